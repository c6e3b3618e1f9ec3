package scenario

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// Search scenario constants.
const (
	searchURL      = "https://duckduckgo.com"
	searchInput    = "#search_form_input_homepage"
	searchQuery    = "webgrid.dev"
	searchResults  = ".result__a"
	searchExpected = "WebGrid"
)

// registry maps scenario names to constructors. Constructors, not values:
// each session task gets its own Scenario so step closures never share
// state across tasks.
var registry = map[string]func() Scenario{
	"search":  searchScenario,
	"title":   titleScenario,
	"echo":    echoScenario,
	"counter": counterScenario,
}

// Names returns the sorted names of the built-in scenarios.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh instance of the named scenario. Unknown names are a
// configuration error.
func ByName(name string) (Scenario, error) {
	ctor, ok := registry[name]
	if !ok {
		return Scenario{}, apperrors.NewConfigError("unknown scenario %q (expected one of: %s)",
			name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// searchScenario drives a live search engine: type a query, submit with
// Enter, then poll for asynchronously rendered result links and pass as soon
// as any link text mentions the expected marker.
func searchScenario() Scenario {
	return Scenario{
		Name: "search",
		Steps: []Step{
			{
				Name:    "navigate",
				Message: "Visiting DuckDuckGo",
				Do: func(ctx context.Context, run *Run) error {
					return run.Session.Navigate(ctx, searchURL)
				},
			},
			{
				Name:    "locate",
				Message: "Locating the search form",
				Do: func(ctx context.Context, run *Run) error {
					el, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, searchInput)
					if err != nil {
						return err
					}
					run.Elem = el
					return nil
				},
			},
			{
				Name:    "mutate",
				Message: "Searching for " + searchQuery,
				Do: func(ctx context.Context, run *Run) error {
					if err := run.Elem.SendKeys(ctx, searchQuery); err != nil {
						return err
					}
					return run.Elem.SendKeys(ctx, webdriver.KeyEnter)
				},
			},
			{
				Name:    "assert-final",
				Message: "Looking at results",
				Do: func(ctx context.Context, run *Run) error {
					results, err := PollElements(ctx, run.Session, webdriver.ByCSSSelector, searchResults, run.Poll)
					if err != nil {
						return err
					}
					_, found, err := FirstMatching(ctx, results, func(text string) bool {
						return strings.Contains(text, searchExpected)
					})
					if err != nil {
						return err
					}
					if !found {
						return fmt.Errorf("none of %d results mention %q", len(results), searchExpected)
					}
					return nil
				},
			},
		},
	}
}

// titleScenario loads a fixture page and asserts its title literal. The
// locate step is an immediate find: a miss fails without polling.
func titleScenario() Scenario {
	return Scenario{
		Name: "title",
		Steps: []Step{
			{
				Name:    "navigate",
				Message: "Loading the title fixture",
				Do: func(ctx context.Context, run *Run) error {
					return run.Session.Navigate(ctx, fixtureURL(titlePageHTML))
				},
			},
			{
				Name:    "locate",
				Message: "Locating the headline",
				Do: func(ctx context.Context, run *Run) error {
					el, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, "#headline")
					if err != nil {
						return err
					}
					run.Elem = el
					return nil
				},
			},
			{
				Name:    "assert-initial",
				Message: "Checking the page title",
				Do: func(ctx context.Context, run *Run) error {
					title, err := run.Session.Title(ctx)
					if err != nil {
						return err
					}
					if title != FixtureTitle {
						return apperrors.AssertionError{What: "title", Expected: FixtureTitle, Actual: title}
					}
					return nil
				},
			},
		},
	}
}

// echoScenario types a multi-byte value into a fixture input and asserts the
// read-back is byte-for-byte identical.
func echoScenario() Scenario {
	return Scenario{
		Name: "echo",
		Steps: []Step{
			{
				Name:    "navigate",
				Message: "Loading the echo fixture",
				Do: func(ctx context.Context, run *Run) error {
					return run.Session.Navigate(ctx, fixtureURL(echoPageHTML))
				},
			},
			{
				Name:    "locate",
				Message: "Locating the echo input",
				Do: func(ctx context.Context, run *Run) error {
					el, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, "#echo")
					if err != nil {
						return err
					}
					run.Elem = el
					return nil
				},
			},
			{
				Name:    "mutate",
				Message: "Typing into the echo input",
				Do: func(ctx context.Context, run *Run) error {
					return run.Elem.SendKeys(ctx, EchoInput)
				},
			},
			{
				Name:    "assert-final",
				Message: "Reading the echo input back",
				Do: func(ctx context.Context, run *Run) error {
					value, err := run.Elem.Property(ctx, "value")
					if err != nil {
						return err
					}
					if value != EchoInput {
						return apperrors.AssertionError{What: "input value", Expected: EchoInput, Actual: value}
					}
					return nil
				},
			},
		},
	}
}

// counterScenario clicks a fixture button and asserts the counter element
// incremented by exactly one.
func counterScenario() Scenario {
	return Scenario{
		Name: "counter",
		Steps: []Step{
			{
				Name:    "navigate",
				Message: "Loading the counter fixture",
				Do: func(ctx context.Context, run *Run) error {
					return run.Session.Navigate(ctx, fixtureURL(counterPageHTML))
				},
			},
			{
				Name:    "locate",
				Message: "Locating the counter",
				Do: func(ctx context.Context, run *Run) error {
					el, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, "#count")
					if err != nil {
						return err
					}
					run.Elem = el
					return nil
				},
			},
			{
				Name:    "assert-initial",
				Message: "Checking the counter start value",
				Do: func(ctx context.Context, run *Run) error {
					text, err := run.Elem.Text(ctx)
					if err != nil {
						return err
					}
					if text != "0" {
						return apperrors.AssertionError{What: "counter", Expected: "0", Actual: text}
					}
					return nil
				},
			},
			{
				Name:    "mutate",
				Message: "Clicking the increment button",
				Do: func(ctx context.Context, run *Run) error {
					button, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, "#increment")
					if err != nil {
						return err
					}
					return button.Click(ctx)
				},
			},
			{
				Name:    "assert-final",
				Message: "Re-reading the counter",
				Do: func(ctx context.Context, run *Run) error {
					text, err := run.Elem.Text(ctx)
					if err != nil {
						return err
					}
					if text != "1" {
						return apperrors.AssertionError{What: "counter", Expected: "1", Actual: text}
					}
					return nil
				},
			},
		},
	}
}
