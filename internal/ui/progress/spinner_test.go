package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
)

func TestSpinner_StopWithoutStart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, "Fetching repositories of acme...")
	s.Stop()
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("Stop() on idle spinner wrote %q, want nothing", buf.String())
	}
}

func TestSpinnerModel_View(t *testing.T) {
	t.Parallel()

	m := spinnerModel{spinner: spinner.New(), message: "Fetching repositories of acme..."}
	if got := m.View().Content; !strings.HasSuffix(got, " Fetching repositories of acme...") {
		t.Errorf("View() = %q, want message after the spinner frame", got)
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("IsTerminal(regular file) = true, want false")
	}
}

func TestBusy_NonTerminal(t *testing.T) {
	t.Parallel()

	if Busy(&bytes.Buffer{}) != nil {
		t.Error("Busy(buffer) should be nil")
	}
}
