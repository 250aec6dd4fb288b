package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/completion"
	"github.com/dmitrijs2005/seabook/internal/models"
	"github.com/dmitrijs2005/seabook/internal/services"
)

var errNoDraft = fmt.Errorf("%w: no active draft, type 'new' to start one", common.ErrIllegalTransition)

func fail(err error) error {
	var ee *services.EligibilityError
	if errors.As(err, &ee) {
		printlnFn("Cannot finalize yet:", ee.Report.String())
		return err
	}
	printlnFn("error:", err)
	return err
}

func (a *App) requireDraft() error {
	if _, ok := a.state.ActiveDraftID(); !ok {
		return fail(errNoDraft)
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	rec, ok := a.state.ActiveDraft()
	if !ok {
		printlnFn(fmt.Sprintf("No active draft. %d finalized record(s). Type 'new' to start one.", len(a.state.History())))
		return nil
	}

	p := rec.Payload
	var b strings.Builder
	fmt.Fprintf(&b, "Draft %s\n", rec.ID)
	fmt.Fprintf(&b, "Ship: %s  IMO: %s  Type: %s\n", orDash(rec.ShipName), orDash(rec.IMONumber), orDash(p.ShipType))

	applicable := models.ApplicableSections(p.ShipType)
	statuses := completion.EvaluateAll(p)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SERVICE_PERIOD\t%s\t\n", completion.PeriodStatus(p.ServicePeriod))
	for _, k := range models.SectionKeys() {
		note := ""
		if !slices.Contains(applicable, k) {
			note = "not applicable to ship type, still required"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, statuses[k], note)
	}
	_ = tw.Flush()

	if report, ok := a.state.Eligibility(); ok {
		b.WriteString(report.String())
	}
	printlnFn(b.String())
	return nil
}

func (a *App) New(ctx context.Context) error {
	rec, err := a.state.StartNewDraft(ctx)
	if err != nil {
		return fail(err)
	}
	printlnFn("Started draft", rec.ID)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if err := a.requireDraft(); err != nil {
		return err
	}
	p := a.state.Payload()

	var b strings.Builder
	fmt.Fprintf(&b, "shipType: %s\n", orDash(p.ShipType))
	sp := p.ServicePeriod
	fmt.Fprintf(&b, "servicePeriod: on %s %s, off %s %s\n",
		orDash(sp.SignOnDate), orDash(sp.SignOnPort), orDash(sp.SignOffDate), orDash(sp.SignOffPort))
	for _, k := range models.SectionKeys() {
		d := p.Section(k)
		if len(d) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", k)
		names := make([]string, 0, len(d))
		for n := range d {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&b, "  %s = %v\n", n, d[n])
		}
	}
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (a *App) ShipType(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: shiptype <code>  (one of " + strings.Join(models.KnownShipTypes(), ", ") + ")")
		return nil
	}
	if err := a.requireDraft(); err != nil {
		return err
	}
	code := models.NormalizeShipType(args[0])
	if err := a.state.SetShipType(ctx, code); err != nil {
		return fail(err)
	}
	if code != "" && !slices.Contains(models.KnownShipTypes(), code) {
		printlnFn("Ship type set to", code, "(not a known code, no type-specific rules apply)")
		return nil
	}
	printlnFn("Ship type set to", orDash(code))
	return nil
}

func (a *App) Section(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: section <KEY> name=value ...")
		return nil
	}
	key, err := sectionKey(args[0])
	if err != nil {
		return fail(err)
	}
	fields, err := parseFields(args[1:])
	if err != nil {
		return fail(err)
	}
	if err := a.requireDraft(); err != nil {
		return err
	}
	if err := a.state.UpdateSection(ctx, key, fields); err != nil {
		return fail(err)
	}
	printlnFn(fmt.Sprintf("%s: %s", key.Title(), a.state.Sections()[key]))
	return nil
}

func (a *App) Period(ctx context.Context, args []string) error {
	patch, err := parsePeriod(args)
	if err != nil {
		return fail(err)
	}
	if err := a.requireDraft(); err != nil {
		return err
	}
	if err := a.state.UpdateServicePeriod(ctx, patch); err != nil {
		return fail(err)
	}

	sp := a.state.Payload().ServicePeriod
	for _, d := range []string{sp.SignOnDate, sp.SignOffDate} {
		if d != "" && !completion.ValidDate(d) {
			printlnFn(fmt.Sprintf("warning: %q is not a %s date", d, completion.DateLayout))
		}
	}
	printlnFn("Service period:", completion.PeriodStatus(sp))
	return nil
}

func (a *App) Finalize(ctx context.Context) error {
	rec, err := a.state.Finalize(ctx)
	if err != nil {
		return fail(err)
	}
	printlnFn(fmt.Sprintf("Finalized %s (%s)", rec.ID, orDash(rec.ShipName)))
	return nil
}

func (a *App) Discard(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	if err := a.state.DiscardDraft(ctx, id); err != nil {
		return fail(err)
	}
	printlnFn("Draft discarded")
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	if err := a.requireDraft(); err != nil {
		return err
	}
	if err := a.state.ResetDraft(ctx); err != nil {
		return fail(err)
	}
	printlnFn("Draft cleared")
	return nil
}

func (a *App) History(ctx context.Context) error {
	finals := a.state.History()
	if len(finals) == 0 {
		printlnFn("No finalized records")
		return nil
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSHIP\tIMO\tSIGN ON\tSIGN OFF\tFINALIZED")
	for _, r := range finals {
		sp := r.Payload.ServicePeriod
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, orDash(r.ShipName), orDash(r.IMONumber),
			orDash(sp.SignOnDate), orDash(sp.SignOffDate), r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
