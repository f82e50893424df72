package docs

import (
	"strings"
	"testing"
)

func TestAll_ReturnsTopics(t *testing.T) {
	topics := All()
	if len(topics) == 0 {
		t.Fatal("All() returned no topics")
	}
	if topics[0].Name != "quickstart" {
		t.Errorf("first topic = %q, want %q", topics[0].Name, "quickstart")
	}
}

func TestAll_NoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.Name] {
			t.Errorf("duplicate topic name: %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestAll_AllFieldsPopulated(t *testing.T) {
	for _, topic := range All() {
		if topic.Name == "" {
			t.Error("topic has empty Name")
		}
		if topic.Title == "" {
			t.Errorf("topic %q has empty Title", topic.Name)
		}
		if topic.Summary == "" {
			t.Errorf("topic %q has empty Summary", topic.Name)
		}
		if topic.Content == "" {
			t.Errorf("topic %q has empty Content", topic.Name)
		}
	}
}

func TestGet_Found(t *testing.T) {
	topic, err := Get("quickstart")
	if err != nil {
		t.Fatalf("Get(quickstart) error: %v", err)
	}
	if topic.Name != "quickstart" {
		t.Errorf("Name = %q, want %q", topic.Name, "quickstart")
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Fatal("Get(nonexistent) should return error")
	}
}

func TestGet_PatternsCoversSelectors(t *testing.T) {
	topic, err := Get("patterns")
	if err != nil {
		t.Fatal(err)
	}
	for _, sel := range []string{"%@%", "%#%", "%0%", "%$%", "%1%"} {
		if !strings.Contains(topic.Content, sel) {
			t.Errorf("patterns topic does not mention %s", sel)
		}
	}
}

func TestGet_Prefix(t *testing.T) {
	topic, err := Get("pat")
	if err != nil {
		t.Fatal(err)
	}
	if topic.Name != "patterns" {
		t.Errorf("Name = %q, want patterns", topic.Name)
	}
	if topic, err = Get("HELP"); err != nil || topic.Name != "helpers" {
		t.Errorf("Get(HELP) = %q, %v", topic.Name, err)
	}
}

func TestGet_NotFoundListsTopics(t *testing.T) {
	_, err := Get("nope")
	if err == nil || !strings.Contains(err.Error(), "quickstart") {
		t.Fatalf("expected topic list in error, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All()) || names[0] != "quickstart" {
		t.Fatalf("Names() = %v", names)
	}
}
