package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	t.Parallel()
	sess := newStubSession()

	var order []string
	sc := Scenario{
		Name: "ordered",
		Steps: []Step{
			{Name: "one", Message: "Doing one", Do: func(context.Context, *Run) error {
				order = append(order, "one")
				return nil
			}},
			{Name: "two", Message: "Doing two", Do: func(context.Context, *Run) error {
				order = append(order, "two")
				return nil
			}},
		},
	}

	if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if strings.Join(order, ",") != "one,two" {
		t.Errorf("step order = %v", order)
	}

	messages := sess.cookieValues("webgrid:message")
	if len(messages) != 2 || messages[0] != "Doing one" || messages[1] != "Doing two" {
		t.Errorf("progress messages = %v", messages)
	}

	statuses := sess.cookieValues("webgrid:metadata.session:status")
	if len(statuses) != 1 || statuses[0] != StatusSuccess {
		t.Errorf("status cookie = %v, expected single success marker", statuses)
	}
}

func TestExecute_StepFailureIsTerminal(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	boom := errors.New("element vanished")

	thirdRan := false
	sc := Scenario{
		Name: "failing",
		Steps: []Step{
			{Name: "navigate", Do: func(context.Context, *Run) error { return nil }},
			{Name: "locate", Message: "Locating", Do: func(context.Context, *Run) error { return boom }},
			{Name: "assert-final", Do: func(context.Context, *Run) error {
				thirdRan = true
				return nil
			}},
		},
	}

	err := sc.Execute(context.Background(), sess, logging.NopLogger{})

	var stepErr apperrors.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if stepErr.Step != "locate" {
		t.Errorf("Step = %q, expected locate", stepErr.Step)
	}
	if !errors.Is(err, boom) {
		t.Error("cause not preserved")
	}
	if thirdRan {
		t.Error("steps after a failure must not run")
	}

	messages := sess.cookieValues("webgrid:message")
	if len(messages) == 0 || messages[len(messages)-1] != "Step locate failed." {
		t.Errorf("messages = %v, expected trailing failure notice", messages)
	}
	statuses := sess.cookieValues("webgrid:metadata.session:status")
	if len(statuses) != 1 || statuses[0] != StatusFailure {
		t.Errorf("status cookie = %v, expected single failure marker", statuses)
	}
}

func TestExecute_TelemetryFailureNeverMasksOutcome(t *testing.T) {
	t.Parallel()

	t.Run("successful run", func(t *testing.T) {
		t.Parallel()
		sess := newStubSession()
		sess.cookieErr = errors.New("cookies unsupported on data: URLs")

		sc := Scenario{Name: "quiet", Steps: []Step{
			{Name: "noop", Message: "Doing nothing", Do: func(context.Context, *Run) error { return nil }},
		}}
		if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
			t.Errorf("telemetry failure leaked into outcome: %v", err)
		}
	})

	t.Run("failed run keeps its own error", func(t *testing.T) {
		t.Parallel()
		sess := newStubSession()
		sess.cookieErr = errors.New("cookies unsupported")
		boom := errors.New("assertion failed")

		sc := Scenario{Name: "quiet", Steps: []Step{
			{Name: "assert-initial", Do: func(context.Context, *Run) error { return boom }},
		}}
		err := sc.Execute(context.Background(), sess, logging.NopLogger{})
		if !errors.Is(err, boom) {
			t.Errorf("expected the step error, got %v", err)
		}
	})
}

func TestExecute_SharesLocatedElementBetweenSteps(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	el := &stubElement{text: "shared"}
	sess.elements["#x"] = []webdriver.Element{el}

	sc := Scenario{Name: "sharing", Steps: []Step{
		{Name: "locate", Do: func(ctx context.Context, run *Run) error {
			found, err := run.Session.FindElement(ctx, webdriver.ByCSSSelector, "#x")
			if err != nil {
				return err
			}
			run.Elem = found
			return nil
		}},
		{Name: "assert-initial", Do: func(ctx context.Context, run *Run) error {
			text, err := run.Elem.Text(ctx)
			if err != nil {
				return err
			}
			if text != "shared" {
				return errors.New("wrong element")
			}
			return nil
		}},
	}}

	if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestTitleScenario(t *testing.T) {
	t.Parallel()

	t.Run("matching title passes", func(t *testing.T) {
		t.Parallel()
		sess := newStubSession()
		sess.title = FixtureTitle
		sess.elements["#headline"] = []webdriver.Element{&stubElement{text: "gridsmoke fixture"}}

		sc, err := ByName("title")
		if err != nil {
			t.Fatalf("ByName: %v", err)
		}
		if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if len(sess.navigations) != 1 || !strings.HasPrefix(sess.navigations[0], "data:text/html") {
			t.Errorf("navigations = %v", sess.navigations)
		}
	})

	t.Run("mismatch carries expected and actual", func(t *testing.T) {
		t.Parallel()
		sess := newStubSession()
		sess.title = "Wrong title"
		sess.elements["#headline"] = []webdriver.Element{&stubElement{}}

		sc, _ := ByName("title")
		err := sc.Execute(context.Background(), sess, logging.NopLogger{})

		var aerr apperrors.AssertionError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected AssertionError, got %v", err)
		}
		if aerr.Expected != FixtureTitle || aerr.Actual != "Wrong title" {
			t.Errorf("AssertionError = %+v", aerr)
		}
	})

	t.Run("immediate locate does not poll", func(t *testing.T) {
		t.Parallel()
		sess := newStubSession()
		sess.title = FixtureTitle

		sc, _ := ByName("title")
		err := sc.Execute(context.Background(), sess, logging.NopLogger{})
		if err == nil {
			t.Fatal("expected failure for missing headline")
		}
		if sess.findCalls != 1 {
			t.Errorf("findCalls = %d, an immediate locate must not retry", sess.findCalls)
		}
	})
}

func TestEchoScenario_RoundTripsMultiByteInput(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	echo := &stubElement{}
	sess.elements["#echo"] = []webdriver.Element{echo}

	sc, err := ByName("echo")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if echo.value != EchoInput {
		t.Errorf("typed value = %q, expected %q", echo.value, EchoInput)
	}
}

func TestEchoScenario_MismatchFails(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	// An input that already held text, so the read-back differs.
	broken := &stubElement{value: "preexisting"}
	sess.elements["#echo"] = []webdriver.Element{broken}

	sc, _ := ByName("echo")
	err := sc.Execute(context.Background(), sess, logging.NopLogger{})

	var aerr apperrors.AssertionError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AssertionError, got %v", err)
	}
	if aerr.Expected != EchoInput {
		t.Errorf("Expected = %q", aerr.Expected)
	}
}

func TestCounterScenario(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	count := &stubElement{text: "0"}
	button := &stubElement{}
	button.onClick = func() { count.text = "1" }
	sess.elements["#count"] = []webdriver.Element{count}
	sess.elements["#increment"] = []webdriver.Element{button}

	sc, err := ByName("counter")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if err := sc.Execute(context.Background(), sess, logging.NopLogger{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if button.clicks != 1 {
		t.Errorf("clicks = %d, expected exactly 1", button.clicks)
	}
}

func TestCounterScenario_FailsWhenCounterDoesNotMove(t *testing.T) {
	t.Parallel()
	sess := newStubSession()
	sess.elements["#count"] = []webdriver.Element{&stubElement{text: "0"}}
	sess.elements["#increment"] = []webdriver.Element{&stubElement{}}

	sc, _ := ByName("counter")
	err := sc.Execute(context.Background(), sess, logging.NopLogger{})

	var aerr apperrors.AssertionError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AssertionError, got %v", err)
	}
	if aerr.Expected != "1" || aerr.Actual != "0" {
		t.Errorf("AssertionError = %+v", aerr)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	names := Names()
	expected := []string{"counter", "echo", "search", "title"}
	if len(names) != len(expected) {
		t.Fatalf("Names() = %v", names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, expected %q", i, names[i], name)
		}
	}
}

func TestByName_Unknown(t *testing.T) {
	t.Parallel()
	_, err := ByName("teleport")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsConfigError(err) {
		t.Errorf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(err.Error(), "search") {
		t.Errorf("error should list valid names: %v", err)
	}
}

func TestByName_ReturnsFreshInstances(t *testing.T) {
	t.Parallel()
	a, _ := ByName("title")
	b, _ := ByName("title")
	if &a.Steps[0] == &b.Steps[0] {
		t.Error("scenario instances must not share step state")
	}
}
