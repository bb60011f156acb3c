package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosaner/nicofilter/internal/models"
	"github.com/mosaner/nicofilter/internal/ngfilter"
	"github.com/mosaner/nicofilter/internal/pipeline"
	"github.com/mosaner/nicofilter/internal/ruleset"
	"github.com/mosaner/nicofilter/internal/source"
)

var (
	cfgFile string
	cfg     appConfig
)

// appConfig is the full configuration: settings snapshot, run context, and
// rule text locations.
type appConfig struct {
	HTTP    models.SourceConfig    `mapstructure:"http"`
	Comment models.CommentSettings `mapstructure:"comment"`
	Video   models.VideoSettings   `mapstructure:"video"`
	Context contextConfig          `mapstructure:"context"`
	Rules   rulesConfig            `mapstructure:"rules"`
}

// contextConfig maps the run-time activation context.
type contextConfig struct {
	Tags           []string `mapstructure:"tags"`
	VideoID        string   `mapstructure:"video_id"`
	OwnerID        string   `mapstructure:"owner_id"`
	SeriesID       string   `mapstructure:"series_id"`
	PromotionScope string   `mapstructure:"promotion_scope"`
}

func (c contextConfig) runContext() *models.RunContext {
	return &models.RunContext{
		Tags:           c.Tags,
		VideoID:        c.VideoID,
		OwnerID:        c.OwnerID,
		SeriesID:       c.SeriesID,
		PromotionScope: c.PromotionScope,
	}
}

// rulesConfig locates the per-category rule texts: local paths or URLs.
type rulesConfig struct {
	Author     string `mapstructure:"author"`
	Command    string `mapstructure:"command"`
	Word       string `mapstructure:"word"`
	VideoID    string `mapstructure:"video_id"`
	Title      string `mapstructure:"title"`
	AuthorName string `mapstructure:"author_name"`
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nicofilter",
	Short: "Filter comments and recommended videos against NG rule texts",
	Long: `A tool that compiles user-authored NG rule texts and applies them to
comment and video dumps, producing the filtered collection plus per-category
match logs.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter an item dump",
	RunE:  runRun,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile the rule texts and report rule/invalid counts",
	RunE:  runCheck,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-filter the item dump whenever a rule file changes",
	RunE:  runWatch,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/nicofilter.toml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	runCmd.Flags().StringP("items", "i", "", "item dump (path or URL)")
	runCmd.Flags().StringP("output", "o", "./output", "output directory")
	watchCmd.Flags().StringP("items", "i", "", "item dump (path or URL)")
	watchCmd.Flags().StringP("output", "o", "./output", "output directory")

	rootCmd.AddCommand(runCmd, checkCmd, watchCmd, initCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nicofilter")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Set defaults
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.retries", 3)
	viper.SetDefault("comment.author_enabled", true)
	viper.SetDefault("comment.command_enabled", true)
	viper.SetDefault("comment.word_enabled", true)
	viper.SetDefault("comment.score_enabled", true)
	viper.SetDefault("comment.score_threshold", -4800)
	viper.SetDefault("comment.nicoru_floor", 30)
	viper.SetDefault("video.id_enabled", true)
	viper.SetDefault("video.title_enabled", true)
	viper.SetDefault("video.author_name_enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	lvl := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		lvl = slog.LevelDebug
	}

	return slogutil.New(&slogutil.Config{
		Format: slogutil.FormatText,
		Level:  lvl,
	})
}

// dump is the item collection shape read from the items reference.
type dump struct {
	Comments []*models.Comment `json:"comments"`
	Videos   []*models.Video   `json:"videos"`
}

// ruleTexts holds the loaded rule text per category.
type ruleTexts struct {
	author     string
	command    string
	word       string
	videoID    string
	title      string
	authorName string
}

func loadTexts(ctx context.Context, l *source.Loader) (t ruleTexts, err error) {
	refs := []struct {
		dst *string
		ref string
	}{
		{&t.author, cfg.Rules.Author},
		{&t.command, cfg.Rules.Command},
		{&t.word, cfg.Rules.Word},
		{&t.videoID, cfg.Rules.VideoID},
		{&t.title, cfg.Rules.Title},
		{&t.authorName, cfg.Rules.AuthorName},
	}

	for _, r := range refs {
		if r.ref == "" {
			continue
		}

		data, lErr := l.Load(ctx, r.ref)
		if lErr != nil {
			if errors.Is(lErr, os.ErrNotExist) {
				continue
			}

			return t, fmt.Errorf("loading %s: %w", r.ref, lErr)
		}

		*r.dst = string(data)
	}

	return t, nil
}

// fileStore persists promoted author rule text back to the author rule file.
type fileStore struct {
	path string
}

func (s *fileStore) SaveAuthorRules(_ context.Context, text string) error {
	return os.WriteFile(s.path, []byte(text), 0644)
}

func runRun(cmd *cobra.Command, args []string) error {
	itemsRef, _ := cmd.Flags().GetString("items")
	outputDir, _ := cmd.Flags().GetString("output")
	if itemsRef == "" {
		return fmt.Errorf("no item dump given, use --items")
	}

	return filterOnce(cmd, itemsRef, outputDir)
}

func filterOnce(cmd *cobra.Command, itemsRef, outputDir string) error {
	ctx := context.Background()
	logger := newLogger(cmd)
	loader := source.New(cfg.HTTP)

	texts, err := loadTexts(ctx, loader)
	if err != nil {
		return err
	}

	data, err := loader.Load(ctx, itemsRef)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}

	var d dump
	if err = json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("parsing items: %w", err)
	}

	rctx := cfg.Context.runContext()

	var store pipeline.Store
	if p := cfg.Rules.Author; p != "" && !isURL(p) {
		store = &fileStore{path: p}
	}

	cp := pipeline.NewComments(&pipeline.CommentConfig{
		Logger:      logger,
		Store:       store,
		Settings:    cfg.Comment,
		AuthorText:  texts.author,
		CommandText: texts.command,
		WordText:    texts.word,
	})
	cres := cp.Run(ctx, rctx, d.Comments)

	vp := pipeline.NewVideos(&pipeline.VideoConfig{
		Logger:         logger,
		Settings:       cfg.Video,
		IDText:         texts.videoID,
		TitleText:      texts.title,
		AuthorNameText: texts.authorName,
	})
	vres := vp.Run(ctx, rctx, d.Videos)

	fmt.Printf("Comments: %d in, %d removed\n", len(d.Comments), len(cres.Removed))
	printReports(cres.Reports)
	if len(cres.Promoted) > 0 {
		fmt.Printf("  promoted authors: %d\n", len(cres.Promoted))
	}

	fmt.Printf("Videos: %d in, %d removed\n", len(d.Videos), len(vres.Removed))
	printReports(vres.Reports)

	fmt.Printf(
		"Elapsed: tier=%s strict=%s merge=%s normal=%s sort=%s\n",
		cres.Timings.TierHide,
		cres.Timings.StrictPass,
		cres.Timings.PromotionMerge,
		cres.Timings.NormalPass,
		cres.Timings.LogSort,
	)

	out := dump{Comments: cres.Comments, Videos: vres.Videos}
	if err = writeJSON(outputDir, "filtered.json", out); err != nil {
		return err
	}

	logs := append(logViews(cres.Reports), logViews(vres.Reports)...)
	return writeJSON(outputDir, "logs.json", logs)
}

func printReports(reports []ngfilter.Report) {
	for _, r := range reports {
		fmt.Printf(
			"  %-12s rules=%d invalid=%d blocked=%d disabled=%d\n",
			r.Category, r.RuleCount, r.InvalidCount, r.BlockedCount, r.DisabledCount,
		)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	loader := source.New(cfg.HTTP)

	texts, err := loadTexts(ctx, loader)
	if err != nil {
		return err
	}

	categories := []struct {
		name string
		text string
	}{
		{ngfilter.CategoryAuthor, texts.author},
		{ngfilter.CategoryCommand, texts.command},
		{ngfilter.CategoryWord, texts.word},
		{ngfilter.CategoryVideoID, texts.videoID},
		{ngfilter.CategoryTitle, texts.title},
		{ngfilter.CategoryAuthorName, texts.authorName},
	}

	for _, c := range categories {
		p := ruleset.New()
		p.Parse(c.text)
		st := p.Stats()
		fmt.Printf(
			"  %-12s rules=%d invalid=%d comments=%d directives=%d\n",
			c.name, st.Rules, st.Invalid, st.Comments, st.Directives,
		)
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	itemsRef, _ := cmd.Flags().GetString("items")
	outputDir, _ := cmd.Flags().GetString("output")
	if itemsRef == "" {
		return fmt.Errorf("no item dump given, use --items")
	}

	if err := filterOnce(cmd, itemsRef, outputDir); err != nil {
		return err
	}

	var paths []string
	for _, p := range []string{
		cfg.Rules.Author, cfg.Rules.Command, cfg.Rules.Word,
		cfg.Rules.VideoID, cfg.Rules.Title, cfg.Rules.AuthorName,
	} {
		if p != "" && !isURL(p) {
			paths = append(paths, p)
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("no local rule files to watch")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching %d rule files...\n", len(paths))
	err := source.Watch(ctx, paths, func(path string) {
		fmt.Printf("\n%s changed, re-filtering\n", path)
		if fErr := filterOnce(cmd, itemsRef, outputDir); fErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", fErr)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "./configs/nicofilter.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	defaultConfig := `# nicofilter configuration

# HTTP client settings for rule texts and item dumps loaded from URLs
[http]
timeout = "30s"
retries = 3

# Run-time activation context
[context]
tags = []
video_id = ""
owner_id = ""
series_id = ""
promotion_scope = ""

# Comment filter categories
[comment]
author_enabled = true
command_enabled = true
word_enabled = true
score_enabled = true
assist_enabled = false
tier_hide_enabled = false
score_threshold = -4800
nicoru_floor = 30
score_nicoru_exempt = true
assist_nicoru_exempt = true
show_score = false

# Video filter categories
[video]
id_enabled = true
title_enabled = true
author_name_enabled = true
paid_enabled = false
views_enabled = false
min_view_count = 0

# Rule text locations: local paths or URLs
[rules]
author = "./rules/author.txt"
command = "./rules/command.txt"
word = "./rules/word.txt"
video_id = "./rules/video_id.txt"
title = "./rules/title.txt"
author_name = "./rules/author_name.txt"
`

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}

func isURL(ref string) bool {
	return len(ref) > 7 && (ref[:7] == "http://" || ref[:8] == "https://")
}

func writeJSON(dir, filename string, data any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// logView is the JSON shape of one category's match log.
type logView struct {
	Category string       `json:"category"`
	Blocked  int          `json:"blocked"`
	Invalid  int          `json:"invalid,omitempty"`
	Entries  []logEntry   `json:"entries,omitempty"`
	Groups   []groupEntry `json:"groups,omitempty"`
}

type logEntry struct {
	Key string   `json:"key"`
	IDs []string `json:"ids"`
}

type groupEntry struct {
	Key    string      `json:"key"`
	Bodies []bodyEntry `json:"bodies"`
}

type bodyEntry struct {
	Body string   `json:"body"`
	IDs  []string `json:"ids"`
}

func logViews(reports []ngfilter.Report) []logView {
	views := make([]logView, 0, len(reports))
	for _, r := range reports {
		v := logView{
			Category: r.Category,
			Blocked:  r.BlockedCount,
			Invalid:  r.InvalidCount,
		}

		if r.Log != nil {
			for _, k := range r.Log.Keys() {
				v.Entries = append(v.Entries, logEntry{Key: k, IDs: r.Log.IDs(k)})
			}
		}

		if r.Grouped != nil {
			for _, k := range r.Grouped.Keys() {
				g := groupEntry{Key: k}
				for _, b := range r.Grouped.Bodies(k) {
					g.Bodies = append(g.Bodies, bodyEntry{Body: b, IDs: r.Grouped.IDs(k, b)})
				}

				v.Groups = append(v.Groups, g)
			}
		}

		views = append(views, v)
	}

	return views
}
