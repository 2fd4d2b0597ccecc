package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/planner"
)

// errNeedsConfirmation is returned by remove when dependents exist and --confirm is absent
var errNeedsConfirmation = errors.New("removal has dependents; rerun with --confirm")

type rootOptions struct {
	workspace     string
	jsonOutput    bool
	seniorCredits float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Validate and edit a degree plan stored in a workspace file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "workspace.yaml", "workspace YAML file")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")
	root.PersistentFlags().Float64Var(&opts.seniorCredits, "senior-credits", models.DefaultSeniorStandingCredits,
		"credits needed for senior standing when a course sets no threshold")

	root.AddCommand(
		newCheckCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newStatusCmd(opts),
		newAddableCmd(opts),
		newAnalyzeCmd(opts),
		newSummaryCmd(opts),
	)
	return root
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDecision(w io.Writer, code string, d planner.AddDecision) {
	if d.Addable {
		fmt.Fprintf(w, "%s: addable\n", code)
	} else {
		fmt.Fprintf(w, "%s: rejected\n", code)
	}
	for _, msg := range d.HardErrors {
		fmt.Fprintf(w, "  error:   %s\n", msg)
	}
	for _, msg := range d.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", msg)
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "check CODE",
		Short: "Report whether a course can be added",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			res, err := ws.engine(opts.seniorCredits).Check(args[0], ws.Plan, ws.Completed, models.Term(term))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, res)
			}
			printDecision(out, res.Course.Code, res.Decision)
			if codes := res.Corequisites.Codes(); len(codes) > 0 {
				fmt.Fprintf(out, "  corequisites: %s\n", strings.Join(codes, ", "))
			}
			for _, s := range res.Corequisites.Skipped {
				fmt.Fprintf(out, "  skipped %s: %s\n", s.Code, s.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", "1", "term to add the course to")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		term   string
		status string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Add a course and its corequisites to the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}

			next, added, res, err := ws.engine(opts.seniorCredits).
				Add(args[0], ws.Plan, ws.Completed, models.Term(term), models.PlanStatus(status))
			out := cmd.OutOrStdout()
			if errors.Is(err, planner.ErrNotAddable) {
				printDecision(out, args[0], res.Decision)
				return err
			}
			if err != nil {
				return err
			}

			if !dryRun {
				ws.Plan = next
				if err := ws.save(opts.workspace); err != nil {
					return err
				}
			}

			if opts.jsonOutput {
				return writeJSON(out, added)
			}
			for _, pc := range added {
				fmt.Fprintf(out, "added %s (%s) to term %s\n", pc.Code, pc.ID, pc.Semester)
				for _, note := range pc.ValidationNotes {
					fmt.Fprintf(out, "  note: %s\n", note)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", "1", "term to add the course to")
	cmd.Flags().StringVar(&status, "status", string(models.PlanStatusPlanning), "planning, will-take or considering")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not write the workspace")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "remove ENTRY_ID|CODE",
		Short: "Remove a plan entry, cascading to dependents with --confirm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			entryID := resolveEntry(ws.Plan, args[0])
			mutator := ws.engine(opts.seniorCredits).Mutator

			preview, err := mutator.PreviewRemoval(ws.Plan, entryID, ws.Completed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if preview.NeedsConfirmation() && !confirm {
				if opts.jsonOutput {
					if err := writeJSON(out, preview); err != nil {
						return err
					}
				} else {
					fmt.Fprintf(out, "removing %s also removes:\n", preview.Target.Code)
					for _, dep := range preview.Dependents {
						fmt.Fprintf(out, "  %s (%s)\n", dep.Code, dep.ID)
					}
				}
				return errNeedsConfirmation
			}

			next, applied, err := mutator.ConfirmRemoval(ws.Plan, entryID, ws.Completed)
			if err != nil {
				return err
			}
			ws.Plan = next
			if err := ws.save(opts.workspace); err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(out, applied)
			}
			fmt.Fprintf(out, "removed %s\n", applied.Target.Code)
			for _, dep := range applied.Dependents {
				fmt.Fprintf(out, "removed %s (dependent)\n", dep.Code)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "also remove entries that depend on this one")
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status ENTRY_ID|CODE STATUS",
		Short: "Change the status of a plan entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			next, err := ws.engine(opts.seniorCredits).Mutator.
				UpdateStatus(ws.Plan, resolveEntry(ws.Plan, args[0]), models.PlanStatus(args[1]))
			if err != nil {
				return err
			}
			ws.Plan = next
			if err := ws.save(opts.workspace); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
			return nil
		},
	}
}

func newAddableCmd(opts *rootOptions) *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "addable",
		Short: "List courses not yet planned or taken",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			list := ws.engine(opts.seniorCredits).Addable(ws.Plan, ws.Completed, models.Term(term))

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, list)
			}
			for _, a := range list {
				printDecision(out, a.Course.Code, a.Decision)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", "1", "term the courses would be added to")
	return cmd
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var concentration string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report concentration progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			progress := planner.Analyze(ws.Catalog.ConcentrationModels(), concentration, ws.Completed, ws.Plan)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, progress)
			}
			for _, p := range progress {
				fmt.Fprintf(out, "%s: %d/%d courses (%.0f%%), %g credits", p.Name, p.TotalProgress, p.RequiredCourses, p.Progress, p.Credits)
				if p.IsEligible {
					fmt.Fprintln(out, ", eligible")
				} else {
					fmt.Fprintf(out, ", %d remaining\n", p.RemainingCourses)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&concentration, "concentration", "c", planner.GeneralConcentration, "concentration id or name")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print credit totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace)
			if err != nil {
				return err
			}
			summary := ws.engine(opts.seniorCredits).Summarize(ws.Plan, ws.Completed)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, summary)
			}
			fmt.Fprintf(out, "completed credits: %g\n", summary.CompletedCredits)
			fmt.Fprintf(out, "planned credits:   %g\n", summary.PlannedCredits)
			return nil
		},
	}
}

// resolveEntry accepts an entry id or a course code on the plan
func resolveEntry(plan models.Plan, ref string) string {
	if _, ok := plan.Find(ref); ok {
		return ref
	}
	for _, pc := range plan.Courses {
		if strings.EqualFold(pc.Code, ref) {
			return pc.ID
		}
	}
	return ref
}
