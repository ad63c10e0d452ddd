package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jeanpaul/itinerary/internal/assistant"
	"github.com/jeanpaul/itinerary/internal/config"
	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/export"
	"github.com/jeanpaul/itinerary/internal/health"
	"github.com/jeanpaul/itinerary/internal/itinerary"
	"github.com/jeanpaul/itinerary/internal/tui"
)

// loadAtStartup reads the data file. A missing file starts an empty
// itinerary; an unreadable one is reported, starts empty, and is moved
// aside by the next save rather than overwritten.
func (a *app) loadAtStartup() {
	err := a.store.Load(a.dataPath)
	a.noteLoad(err)
	switch {
	case err == nil:
	case errors.Is(err, itinerary.ErrNoData):
		a.log.Debug("no saved itinerary, starting fresh", "path", a.dataPath)
	default:
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("warning: "+err.Error()))
	}
}

// noteLoad records whether dataPath holds data the store could not read.
func (a *app) noteLoad(err error) {
	if err == nil || errors.Is(err, itinerary.ErrNoData) {
		a.unreadable = nil
		return
	}
	a.unreadable = err
}

func (a *app) save() error {
	if a.unreadable != nil {
		kept, err := itinerary.Backup(a.dataPath)
		if err != nil {
			return fmt.Errorf("not overwriting %s: %w", a.dataPath, err)
		}
		if kept != "" {
			a.log.Warn("unreadable data file moved aside", "path", a.dataPath, "backup", kept, "cause", a.unreadable)
			fmt.Fprintln(a.out, tui.ErrorStyle.Render(fmt.Sprintf("Unreadable %s kept as %s.", a.dataPath, kept)))
		}
		a.unreadable = nil
	}
	return a.store.Save(a.dataPath)
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "add":
		return a.cmdAdd(args)
	case "remove":
		return a.cmdRemove(args)
	case "update":
		return a.cmdUpdate(args)
	case "list":
		return a.cmdList(args)
	case "search":
		return a.cmdSearch(args)
	case "plan":
		return a.cmdAssist(ctx, name, assistant.KindItinerary, args)
	case "tips":
		return a.cmdAssist(ctx, name, assistant.KindBudgetTips, args)
	case "browse":
		return tui.Browse(ctx, a.store.All(), a.asst, a.theme)
	case "export":
		return a.cmdExport(args)
	case "import":
		return a.cmdImport(args)
	default:
		return fmt.Errorf("unknown command %q, run 'itinerary help'", name)
	}
}

func (a *app) cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	city := fs.String("city", "", "")
	country := fs.String("country", "", "")
	start := fs.String("start", "", "")
	end := fs.String("end", "", "")
	budget := fs.String("budget", "", "")
	activities := fs.String("activities", "", "")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("add: %w", err)
	}

	req := itinerary.Request{
		"city":       *city,
		"country":    *country,
		"start_date": *start,
		"end_date":   *end,
		"activities": *activities,
	}
	if *budget != "" {
		req["budget"] = *budget
	}

	d, err := a.store.AddFromRequest(req)
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Destination '%s, %s' added successfully.", d.City, d.Country)))
	return nil
}

func (a *app) cmdRemove(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: itinerary remove <city>")
	}
	city := strings.Join(args, " ")
	if _, err := a.store.Remove(city); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Destination '%s' removed.", city)))
	return nil
}

func (a *app) cmdUpdate(args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: itinerary update <city> [--city --country --start --end --budget --activities]")
	}
	city := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	newCity := fs.String("city", "", "")
	country := fs.String("country", "", "")
	start := fs.String("start", "", "")
	end := fs.String("end", "", "")
	budget := fs.String("budget", "", "")
	activities := fs.String("activities", "", "")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var p destination.Patch
	if set["city"] {
		p.City = newCity
	}
	if set["country"] {
		p.Country = country
	}
	if set["start"] {
		p.StartDate = start
	}
	if set["end"] {
		p.EndDate = end
	}
	if set["budget"] {
		b, err := strconv.ParseFloat(strings.TrimSpace(*budget), 64)
		if err != nil {
			return &itinerary.CoercionError{Field: "budget", Value: *budget, Err: err}
		}
		p.Budget = &b
	}
	if set["activities"] {
		p.Activities = itinerary.SplitActivities(*activities)
	}
	if p.Empty() {
		fmt.Fprintln(a.out, "No updates provided.")
		return nil
	}

	return a.applyUpdate(city, p)
}

// applyUpdate runs the patch and saves. A partial rejection still saves the
// fields that were accepted.
func (a *app) applyUpdate(city string, p destination.Patch) error {
	uerr := a.updateInMemory(city, p)
	if errors.Is(uerr, itinerary.ErrNotFound) {
		return uerr
	}
	if err := a.save(); err != nil {
		return err
	}
	return uerr
}

func (a *app) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sortBy := fs.String("sort", "", "")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if *sortBy != "" {
		if err := a.store.Sort(itinerary.SortKey(strings.ToLower(*sortBy))); err != nil {
			return err
		}
	}
	a.printAll()
	return nil
}

func (a *app) printAll() {
	if a.store.Len() > 0 {
		fmt.Fprintln(a.out, tui.TitleStyle.Render("--- All Destinations ---"))
	}
	a.store.Table(a.out)
}

func (a *app) cmdSearch(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: itinerary search <city|country|activity> <keyword>")
	}
	mode, err := itinerary.ParseSearchMode(args[0])
	if err != nil {
		return err
	}
	a.printSearch(mode, strings.Join(args[1:], " "))
	return nil
}

func (a *app) printSearch(mode itinerary.SearchMode, keyword string) {
	found, _ := a.store.Search(keyword, mode)
	if len(found) == 0 {
		fmt.Fprintf(a.out, "No destinations found matching '%s' by '%s'.\n", keyword, mode)
		return
	}
	fmt.Fprintln(a.out, tui.TitleStyle.Render("--- Search Results ---"))
	for _, d := range found {
		fmt.Fprint(a.out, d)
		fmt.Fprintln(a.out, tui.SeparatorStyle.Render(strings.Repeat("-", 20)))
	}
}

func (a *app) cmdAssist(ctx context.Context, name string, kind assistant.Kind, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: itinerary %s <city>", name)
	}
	d, err := a.store.FindByCity(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.assist(ctx, kind, d)
	return nil
}

func (a *app) assist(ctx context.Context, kind assistant.Kind, d *destination.Destination) {
	var title, text string
	if kind == assistant.KindBudgetTips {
		title = "--- Budget Tips ---"
		text = a.asst.GenerateBudgetTips(ctx, d)
	} else {
		title = "--- Generated Itinerary ---"
		text = a.asst.GenerateItinerary(ctx, d)
	}

	fmt.Fprintln(a.out, tui.TitleStyle.Render(title))
	if a.markdown && text != assistant.Placeholder {
		fmt.Fprint(a.out, tui.Markdown(text, a.theme, 80))
		return
	}
	fmt.Fprintln(a.out, text)
}

func (a *app) cmdExport(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: itinerary export <file.xlsx>")
	}
	path := args[0]
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	dests := a.store.All()
	if err := export.XLSX(path, dests); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Exported %d destination(s) to %s", len(dests), path)))
	return nil
}

func (a *app) cmdImport(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: itinerary import <glob>")
	}
	n, err := a.store.Import(args[0])
	if err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Imported %d destination(s).", n)))
	return nil
}

func cmdProviders(cfg *config.Config) {
	fmt.Println(tui.TitleStyle.Render("  Configured Providers"))
	fmt.Println()

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := cfg.Providers[name]
		label := name
		if name == cfg.DefaultProvider {
			label += " (default)"
		}
		where := "default endpoint"
		if p.BaseURL != "" {
			where = p.BaseURL
		}
		key := tui.DimStyle.Render("no key")
		if p.HasKey() {
			key = tui.SuccessStyle.Render("key set")
		}
		fmt.Printf("  %s  %s  %s  %s\n",
			tui.LabelStyle.Render(label),
			tui.HelpStyle.Render(p.Type),
			tui.HelpStyle.Render(where),
			key,
		)
	}
}

// cmdDoctor checks every configured provider and reports whether the default
// one can answer.
func cmdDoctor(ctx context.Context, cfg *config.Config) bool {
	fmt.Print(tui.TitleStyle.Render(tui.Banner))
	fmt.Println(tui.TitleStyle.Render("  Service Health Check"))
	fmt.Println()

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	defaultOk := true
	for _, name := range names {
		isDefault := name == cfg.DefaultProvider
		label := name
		if isDefault {
			label += " (default)"
		}
		fmt.Printf("  %s %s ... ", tui.HelpStyle.Render("●"), tui.LabelStyle.Render(label))

		model := ""
		if isDefault {
			model = cfg.DefaultModel
		}
		prov, err := makeProvider(cfg, name, model)
		if err != nil {
			if isDefault {
				defaultOk = false
				fmt.Println(tui.ErrorStyle.Render("✗ " + err.Error()))
			} else {
				fmt.Println(tui.HelpStyle.Render("- " + err.Error() + " (optional)"))
			}
			continue
		}

		status := health.Check(ctx, prov)
		switch {
		case !status.Reachable:
			if isDefault {
				defaultOk = false
				fmt.Println(tui.ErrorStyle.Render("✗ " + status.Error))
			} else {
				fmt.Println(tui.HelpStyle.Render("- " + status.Error + " (optional)"))
			}
		case status.ModelError() != nil:
			if isDefault {
				defaultOk = false
			}
			fmt.Println(tui.ErrorStyle.Render("✗ " + status.ModelError().Error()))
		default:
			fmt.Printf("%s %s\n",
				tui.SuccessStyle.Render(fmt.Sprintf("✓ OK (%d models)", len(status.Models))),
				tui.HelpStyle.Render(status.Latency.Round(time.Millisecond).String()),
			)
		}
	}

	fmt.Printf("\n  %s %s ... ", tui.HelpStyle.Render("●"), tui.LabelStyle.Render("data"))
	if _, err := os.Stat(cfg.DataFile); err == nil {
		fmt.Println(tui.SuccessStyle.Render("✓ " + cfg.DataFile))
	} else {
		fmt.Println(tui.HelpStyle.Render("- " + cfg.DataFile + " not created yet"))
	}

	fmt.Printf("  %s %s ... ", tui.HelpStyle.Render("●"), tui.LabelStyle.Render("config"))
	if _, err := os.Stat(config.Path()); err == nil {
		fmt.Println(tui.SuccessStyle.Render("✓ " + config.Path()))
	} else {
		fmt.Println(tui.HelpStyle.Render("- using defaults (run 'itinerary config init' to customize)"))
	}

	fmt.Println()
	if defaultOk {
		fmt.Println(tui.SuccessStyle.Render("  Default provider healthy!"))
	} else {
		fmt.Println(tui.ErrorStyle.Render("  Default provider is not usable. AI replies will fall back to the placeholder."))
	}
	return defaultOk
}

func cmdConfigInit() {
	path := config.Path()
	if err := config.WriteDefault(path); err != nil {
		fatal("%s", err)
	}
	fmt.Println(tui.SuccessStyle.Render("Wrote " + path))
}
