package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeanpaul/itinerary/internal/assistant"
	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/itinerary"
	"github.com/jeanpaul/itinerary/internal/tui"
)

// prompter reads one trimmed answer per line. io.EOF means the input is gone
// and the menu should wind down.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), w: out}
}

func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.w)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) say(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *prompter) fail(format string, args ...any) {
	fmt.Fprintln(p.w, tui.ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// askDate repeats until the answer has the YYYY-MM-DD shape.
func (p *prompter) askDate(prompt string) (string, error) {
	for {
		s, err := p.ask(prompt)
		if err != nil {
			return "", err
		}
		if destination.ValidDate(s) {
			return s, nil
		}
		p.fail("Invalid date format. Please use YYYY-MM-DD.")
	}
}

// askBudget repeats until the answer is a positive number.
func (p *prompter) askBudget(prompt string) (float64, error) {
	for {
		s, err := p.ask(prompt)
		if err != nil {
			return 0, err
		}
		v, perr := strconv.ParseFloat(s, 64)
		switch {
		case perr != nil:
			p.fail("Invalid input. Please enter a number.")
		case !destination.ValidBudget(v):
			p.fail("Budget must be a positive number.")
		default:
			return v, nil
		}
	}
}

// askActivities repeats until at least one activity is given.
func (p *prompter) askActivities(prompt string) ([]string, error) {
	for {
		s, err := p.ask(prompt)
		if err != nil {
			return nil, err
		}
		if a := itinerary.SplitActivities(s); destination.ValidActivities(a) {
			return a, nil
		}
		p.fail("Activities cannot be empty. Please enter at least one activity, comma-separated.")
	}
}

func (a *app) displayMenu() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, tui.TitleStyle.Render("--- AI Travel Itinerary Planner Menu ---"))
	for i, item := range []string{
		"Add Destination",
		"Remove Destination",
		"Update Destination",
		"View All Destinations",
		"Search Destination",
		"AI Travel Assistance",
		"Save Itinerary",
		"Load Itinerary",
		"Exit",
	} {
		fmt.Fprintf(a.out, "%s %s\n", tui.CommandStyle.Render(strconv.Itoa(i+1)+"."), item)
	}
	fmt.Fprintln(a.out, tui.SeparatorStyle.Render(strings.Repeat("-", 40)))
}

// runMenu drives the numbered menu until Exit or end of input. Both save the
// itinerary before returning.
func (a *app) runMenu(ctx context.Context, in io.Reader) error {
	p := newPrompter(in, a.out)
	for {
		a.displayMenu()
		choice, err := p.ask("Enter your choice (1-9): ")
		if errors.Is(err, io.EOF) {
			return a.exitMenu(p)
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.menuAdd(p)
		case "2":
			err = a.menuRemove(p)
		case "3":
			err = a.menuUpdate(p)
		case "4":
			err = a.menuViewAll(p)
		case "5":
			err = a.menuSearch(p)
		case "6":
			err = a.menuAssist(ctx, p)
		case "7":
			a.menuSave(p)
		case "8":
			a.menuLoad(p)
		case "9":
			return a.exitMenu(p)
		default:
			p.fail("Invalid choice. Please enter a number between 1 and 9.")
		}

		if errors.Is(err, io.EOF) {
			return a.exitMenu(p)
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) exitMenu(p *prompter) error {
	p.say("Exiting and saving data...")
	if err := a.save(); err != nil {
		return err
	}
	p.say("Goodbye!")
	return nil
}

func (a *app) menuAdd(p *prompter) error {
	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- Add New Destination ---"))
	city, err := p.ask("Enter city: ")
	if err != nil {
		return err
	}
	country, err := p.ask("Enter country: ")
	if err != nil {
		return err
	}
	start, err := p.askDate("Enter start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	end, err := p.askDate("Enter end date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	budget, err := p.askBudget("Enter budget (e.g., 1200.50): ")
	if err != nil {
		return err
	}
	activities, err := p.askActivities("Enter activities (comma-separated, e.g., Museum, Beach): ")
	if err != nil {
		return err
	}

	d, err := a.store.AddFromRequest(itinerary.Request{
		"city":       city,
		"country":    country,
		"start_date": start,
		"end_date":   end,
		"budget":     budget,
		"activities": activities,
	})
	if err != nil {
		p.fail("Destination not added: %s", err)
		return nil
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Destination '%s, %s' added successfully.", d.City, d.Country)))
	return nil
}

func (a *app) menuRemove(p *prompter) error {
	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- Remove Destination ---"))
	city, err := p.ask("Enter the city of the destination to remove: ")
	if err != nil {
		return err
	}
	if _, err := a.store.Remove(city); err != nil {
		p.fail("Destination '%s' not found.", city)
		return nil
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Destination '%s' removed.", city)))
	return nil
}

func (a *app) menuUpdate(p *prompter) error {
	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- Update Destination ---"))
	city, err := p.ask("Enter the city of the destination to update: ")
	if err != nil {
		return err
	}
	current, err := a.store.FindByCity(city)
	if err != nil {
		p.fail("Destination '%s' not found.", city)
		return nil
	}

	p.say("Current details for %s:", current.City)
	fmt.Fprint(a.out, current)
	p.say("Enter new values (leave blank to keep current):")

	var patch destination.Patch
	text := func(prompt string, dst **string) error {
		v, err := p.ask(prompt)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = &v
		}
		return nil
	}
	if err := text(fmt.Sprintf("New City (current: %s): ", current.City), &patch.City); err != nil {
		return err
	}
	if err := text(fmt.Sprintf("New Country (current: %s): ", current.Country), &patch.Country); err != nil {
		return err
	}
	if err := text(fmt.Sprintf("New Start Date (YYYY-MM-DD) (current: %s): ", current.StartDate), &patch.StartDate); err != nil {
		return err
	}
	if err := text(fmt.Sprintf("New End Date (YYYY-MM-DD) (current: %s): ", current.EndDate), &patch.EndDate); err != nil {
		return err
	}

	budget, err := p.ask(fmt.Sprintf("New Budget (e.g., 1500.00) (current: %s): ", destination.FormatMoney(current.Budget)))
	if err != nil {
		return err
	}
	if budget != "" {
		if v, perr := strconv.ParseFloat(budget, 64); perr == nil {
			patch.Budget = &v
		} else {
			p.fail("Invalid budget format. Keeping original.")
		}
	}

	activities, err := p.ask(fmt.Sprintf("New Activities (comma-separated) (current: %s): ", current.ActivityList()))
	if err != nil {
		return err
	}
	if activities != "" {
		if list := itinerary.SplitActivities(activities); destination.ValidActivities(list) {
			patch.Activities = list
		} else {
			p.fail("Activities cannot be empty. Keeping original.")
		}
	}

	if patch.Empty() {
		p.say("No updates provided.")
		return nil
	}
	if err := a.updateInMemory(city, patch); err != nil {
		p.fail("%s", err)
	}
	return nil
}

// updateInMemory applies the patch and prints a diff of what changed.
func (a *app) updateInMemory(city string, patch destination.Patch) error {
	before, err := a.store.FindByCity(city)
	if err != nil {
		return err
	}
	after, uerr := a.store.Update(city, patch)
	if after == nil {
		return uerr
	}
	if diff := recordDiff(before, after); diff != "" {
		fmt.Fprint(a.out, colorDiff(diff))
	}
	if uerr != nil {
		return fmt.Errorf("some fields kept their old value: %w", uerr)
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render(fmt.Sprintf("Destination '%s' updated successfully.", city)))
	return nil
}

func (a *app) menuViewAll(p *prompter) error {
	a.printAll()
	if a.store.Len() == 0 {
		return nil
	}
	answer, err := p.ask("Sort destinations? (y/n): ")
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		return nil
	}
	key, err := p.ask("Sort by (start_date/budget): ")
	if err != nil {
		return err
	}
	k := itinerary.SortKey(strings.ToLower(key))
	if err := a.store.Sort(k); err != nil {
		p.fail("Invalid sort key. Options are 'start_date' or 'budget'.")
		return nil
	}
	p.say("Destinations sorted by %s.", k)
	a.printAll()
	return nil
}

func (a *app) menuSearch(p *prompter) error {
	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- Search Destination ---"))
	kind, err := p.ask("Search by (city/country/activity): ")
	if err != nil {
		return err
	}
	kind = strings.ToLower(kind)
	keyword, err := p.ask(fmt.Sprintf("Enter %s keyword: ", kind))
	if err != nil {
		return err
	}
	mode, err := itinerary.ParseSearchMode(kind)
	if err != nil {
		p.fail("Invalid search type. Please choose 'city', 'country', or 'activity'.")
		return nil
	}
	a.printSearch(mode, keyword)
	return nil
}

func (a *app) menuAssist(ctx context.Context, p *prompter) error {
	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- AI Travel Assistance ---"))
	city, err := p.ask("Enter the city for AI assistance: ")
	if err != nil {
		return err
	}
	d, err := a.store.FindByCity(city)
	if err != nil {
		p.fail("Destination '%s' not found.", city)
		return nil
	}

	fmt.Fprintln(a.out, tui.TitleStyle.Render("\n--- AI Options ---"))
	p.say("1. Generate Daily Itinerary")
	p.say("2. Generate Budget Tips")
	choice, err := p.ask("Enter your choice: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		a.assist(ctx, assistant.KindItinerary, d)
	case "2":
		a.assist(ctx, assistant.KindBudgetTips, d)
	default:
		p.fail("Invalid AI option.")
	}
	return nil
}

func (a *app) menuSave(p *prompter) {
	if err := a.save(); err != nil {
		p.fail("Error saving itinerary: %s", err)
		return
	}
	fmt.Fprintln(a.out, tui.SuccessStyle.Render("Itinerary saved successfully."))
}

func (a *app) menuLoad(p *prompter) {
	err := a.store.Load(a.dataPath)
	a.noteLoad(err)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, tui.SuccessStyle.Render("Itinerary loaded successfully."))
	case errors.Is(err, itinerary.ErrNoData):
		p.say("No saved itinerary found. Starting fresh.")
	case errors.Is(err, itinerary.ErrCorrupt):
		p.fail("Error reading itinerary file. It might be corrupted.")
	default:
		p.fail("Error loading itinerary: %s", err)
	}
}
