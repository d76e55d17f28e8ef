package file

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/zoobzio/scry"
	scrytest "github.com/zoobzio/scry/testing"
	"github.com/zoobzio/scry/tree"
)

type spinner struct{}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestWatcher_InitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	writeFixture(t, path, "tag: div\nchildren:\n  - component: Spinner\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := tree.NewLive()
	w := New(path, WithParseOptions(
		tree.WithComponents(map[string]any{"Spinner": spinner{}}),
	))
	if err := w.Watch(ctx, live); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	got, _ := live.ByType(reflect.TypeOf(spinner{}))
	if len(got) != 1 {
		t.Errorf("expected spinner rendered, got %d", len(got))
	}
}

func TestWatcher_MissingFile(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing.yaml"))
	if err := w.Watch(context.Background(), tree.NewLive()); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestWatcher_InvalidInitialFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	writeFixture(t, path, "tag: div\nchildren:\n  - component: Unknown\n")

	live := tree.NewLive()
	if err := New(path).Watch(context.Background(), live); err == nil {
		t.Error("expected parse error")
	}
	if live.Root() != nil {
		t.Error("expected nothing rendered")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	writeFixture(t, path, `{"tag": "div"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := tree.NewLive()
	if err := New(path).Watch(ctx, live); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeFixture(t, path, `{"tag": "div", "children": [{"tag": "table"}]}`)

	ok := scrytest.WaitFor(t, 2*time.Second, func() bool {
		got, _ := live.ByTag("table")
		return len(got) == 1
	})
	if !ok {
		t.Fatal("expected table after rewrite")
	}
}

func TestWatcher_KeepsTreeOnBadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	writeFixture(t, path, `{"tag": "div"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := tree.NewLive()
	if err := New(path).Watch(ctx, live); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	before := live.Root()

	writeFixture(t, path, `{"tag": `)
	time.Sleep(50 * time.Millisecond)

	if live.Root() != before {
		t.Error("expected previous tree to stay current after a bad write")
	}
}

func TestWatcher_DrivesWait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	writeFixture(t, path, "tag: main\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := tree.NewLive()
	if err := New(path).Watch(ctx, live); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	s := scry.NewManualScheduler()
	d := scry.WaitForTag(ctx, s, (*tree.Live).ByTag, live, "dialog", scry.Attempts(1000))

	s.Tick()
	writeFixture(t, path, "tag: main\nchildren:\n  - tag: dialog\n")

	ticks := 0
	scrytest.WaitFor(t, 2*time.Second, func() bool {
		s.Tick()
		ticks++
		return d.State().Settled()
	})

	node := scrytest.RequireFulfilled(t, d, time.Second)
	if node.Tag != "dialog" {
		t.Errorf("expected dialog, got %q", node.Tag)
	}
	if s.Scheduled() != ticks+1 {
		t.Errorf("expected one frame per tick, scheduled %d for %d ticks", s.Scheduled(), ticks+1)
	}
}
