package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/storeops/auditpad/internal/audit"
	"github.com/storeops/auditpad/internal/form"
	"github.com/storeops/auditpad/internal/template"
)

var (
	submitAuditor string
	submitDate    string
	submitTime    string
	submitType    string
	submitNotes   string
)

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVar(&submitAuditor, "auditor", "", "Name of the person auditing")
	submitCmd.Flags().StringVar(&submitDate, "date", "", "Audit date (default today)")
	submitCmd.Flags().StringVar(&submitTime, "time", "", "Audit time")
	submitCmd.Flags().StringVar(&submitType, "type", "", "Override the template's audit type")
	submitCmd.Flags().StringVar(&submitNotes, "notes", "", "Header notes")
}

var submitCmd = &cobra.Command{
	Use:   "submit <template>",
	Short: "Fill out an audit form and save it",
	Long:  "Renders the named template's questions on the terminal, reads answers, and appends the completed audit to the store. Every submission is a new record.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	tpl, err := template.Load(args[0])
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	plan := tpl.Plan()
	sub := form.Submission{}
	if err := fillPlan(cmd.InOrStdin(), cmd.OutOrStdout(), plan, sub); err != nil {
		return err
	}

	auditType := submitType
	if auditType == "" {
		auditType = tpl.AuditType
	}
	auditDate := submitDate
	if auditDate == "" {
		auditDate = time.Now().Format("2006-01-02")
	}
	device, err := st.DeviceName()
	if err != nil {
		return err
	}

	rec := audit.Build(audit.Header{
		AuditType:   auditType,
		Auditor:     submitAuditor,
		AuditDate:   auditDate,
		AuditTime:   submitTime,
		HeaderNotes: submitNotes,
		DeviceName:  device,
	}, plan, sub)

	if err := st.Append(rec); err != nil {
		return err
	}

	sum := audit.Summarize(rec)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s audit %s (Yes: %d  No: %d  Blank: %d)\n",
		rec.AuditType, rec.ID, sum.Yes, sum.No, sum.Blank)
	return nil
}

// fillPlan prompts for each widget in plan order and encodes the answers
// into the submission. Empty input leaves a question unanswered, which is
// preserved as "" rather than dropped.
func fillPlan(in io.Reader, out io.Writer, plan form.Plan, sub form.Submission) error {
	r := bufio.NewReader(in)

	for _, w := range plan {
		var a form.Answers
		switch w.Kind {
		case form.KindYesNo:
			v, err := promptChoice(r, out, w.Label, []string{"Yes", "No"})
			if err != nil {
				return err
			}
			a.Value = v
			a.Notes, err = promptLine(r, out, "  Notes")
			if err != nil {
				return err
			}
		case form.KindNotes:
			var err error
			a.Notes, err = promptLine(r, out, w.Label)
			if err != nil {
				return err
			}
		case form.KindYesNoNA:
			v, err := promptChoice(r, out, w.Label, []string{"Yes", "No", "N/A"})
			if err != nil {
				return err
			}
			a.Value = v
		case form.KindTriOuts:
			fmt.Fprintf(out, "%s\n", w.Label)
			rows := [3]*string{&a.SalesFloor, &a.Cooler, &a.Beer}
			for i, row := range form.TriOutsRows {
				v, err := promptChoice(r, out, "  "+row.Label, []string{"Yes", "No"})
				if err != nil {
					return err
				}
				*rows[i] = v
			}
			var err error
			a.Notes, err = promptLine(r, out, "  "+form.TriOutsNotesLabel)
			if err != nil {
				return err
			}
		}
		w.Encode(sub, a)
	}
	return nil
}

// promptChoice reads one of the allowed answers (case-insensitive, "y"/"n"
// accepted). Empty input means unanswered. Anything else reprompts.
func promptChoice(r *bufio.Reader, out io.Writer, label string, allowed []string) (string, error) {
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, strings.Join(allowed, "/"))
		line, err := readLine(r)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", nil
		}
		for _, want := range allowed {
			if strings.EqualFold(line, want) ||
				(len(line) == 1 && strings.EqualFold(line, want[:1])) {
				return want, nil
			}
		}
		fmt.Fprintf(out, "  answer %s or leave blank\n", strings.Join(allowed, ", "))
	}
}

func promptLine(r *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	return readLine(r)
}

// readLine treats EOF as an empty answer so piped input can stop early.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
