package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/logger"
	"github.com/jonathan/career-navigator/internal/render"
	"github.com/jonathan/career-navigator/internal/session"
	"github.com/spf13/cobra"
)

// analyzeOptions are the analyze command's inputs.
type analyzeOptions struct {
	ProfilePath     string
	ProfileURL      string
	Role            string
	Years           int
	TargetIndustry  string
	TargetRole      string
	UserID          string
	SkipCareerGoals bool
}

var (
	analyzeOpts  analyzeOptions
	analyzeStore string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the wizard once and print skills, career paths and a learning plan",
	Long: `Reads a profile from a file (or stdin with "-") or a public URL, extracts skills,
then generates career paths and a learning plan. Results are stored under --user
and printed as text.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.ProfilePath, "profile", "p", "", `Profile text file, or "-" for stdin`)
	f.StringVar(&analyzeOpts.ProfileURL, "profile-url", "", "Public profile page to import instead of --profile")
	f.StringVarP(&analyzeOpts.Role, "role", "r", "", "Current role (required)")
	f.IntVarP(&analyzeOpts.Years, "years", "y", 0, "Years of experience (0-50)")
	f.StringVar(&analyzeOpts.TargetIndustry, "industry", "", "Target industry (optional)")
	f.StringVar(&analyzeOpts.TargetRole, "target-role", "", "Target role for the learning plan")
	f.StringVar(&analyzeOpts.UserID, "user", "cli", "User ID to store results under")
	f.BoolVar(&analyzeOpts.SkipCareerGoals, "skills-only", false, "Stop after skill extraction")
	f.StringVar(&analyzeStore, "store", "", "Document store URI (overrides MONGODB_URI, e.g. memory://)")
	_ = analyzeCmd.MarkFlagRequired("role")
	analyzeCmd.MarkFlagsMutuallyExclusive("profile", "profile-url")
	analyzeCmd.MarkFlagsOneRequired("profile", "profile-url")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if !analyzeOpts.SkipCareerGoals && analyzeOpts.TargetRole == "" {
		return fmt.Errorf("--target-role is required unless --skills-only is set")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if analyzeStore != "" {
		cfg.StoreURI = analyzeStore
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	return runAnalysis(ctx, cmd.OutOrStdout(), d.llm, d.db, d.log, analyzeOpts)
}

// runAnalysis drives the wizard and prints the three renders.
func runAnalysis(ctx context.Context, out io.Writer, client llm.Client, database *db.DB, log *logger.Logger, opts analyzeOptions) error {
	input := session.ProfileInput{
		CurrentRole:     opts.Role,
		YearsExperience: opts.Years,
		ProfileURL:      opts.ProfileURL,
	}
	if opts.ProfilePath != "" {
		text, err := ingestion.ReadProfileFile(opts.ProfilePath)
		if err != nil {
			return err
		}
		input.ProfileText = text
	}

	nav := session.NewNavigator(client, database, log)
	sess, err := nav.Load(ctx, opts.UserID)
	if err != nil {
		return err
	}

	if err := nav.SubmitProfile(ctx, sess, input); err != nil {
		return err
	}
	if !opts.SkipCareerGoals {
		goals := session.CareerGoals{TargetIndustry: opts.TargetIndustry, TargetRole: opts.TargetRole}
		if err := nav.SubmitCareerGoals(ctx, sess, goals); err != nil {
			return err
		}
	}

	target := render.NewTextTarget(out)
	if len(sess.Notices) > 0 {
		target.Section("Notices")
	}
	for _, n := range sess.Notices {
		target.Notice(n.Level, n.Message)
	}
	render.SkillsRadar(target, sess.Skills)
	if sess.CareerGoalsSubmitted() {
		render.CareerPathTimeline(target, sess.CareerPaths)
		render.LearningPath(target, sess.LearningPlan)
	}
	target.Flush()
	return nil
}
