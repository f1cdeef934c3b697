package config

import (
	"fmt"
	"testing"
)

// stubSection is a minimal Section implementation for manager tests.
type stubSection struct {
	id          string
	data        map[string]interface{}
	validateErr error
}

func (s *stubSection) ID() string                                { return s.id }
func (s *stubSection) Title() string                             { return s.id }
func (s *stubSection) Description() string                       { return "stub section" }
func (s *stubSection) Data() map[string]interface{}              { return s.data }
func (s *stubSection) SetData(data map[string]interface{}) error { s.data = data; return nil }
func (s *stubSection) Validate() error                           { return s.validateErr }
func (s *stubSection) Reset()                                    { s.data = make(map[string]interface{}) }

// stubStore is an in-memory Store implementation for manager tests.
type stubStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saved    bool
}

func newStubStore() *stubStore {
	return &stubStore{sections: make(map[string]map[string]interface{})}
}

func (s *stubStore) Load() error { return s.loadErr }
func (s *stubStore) Save() error { s.saved = true; return s.saveErr }

func (s *stubStore) GetSection(id string) (map[string]interface{}, error) {
	if data, ok := s.sections[id]; ok {
		return data, nil
	}
	return make(map[string]interface{}), nil
}

func (s *stubStore) SetSection(id string, data map[string]interface{}) error {
	s.sections[id] = data
	return nil
}

func (s *stubStore) GetAll() (map[string]map[string]interface{}, error) { return s.sections, nil }
func (s *stubStore) SetAll(data map[string]map[string]interface{}) error {
	s.sections = data
	return nil
}

func TestManagerRegisterSection(t *testing.T) {
	m := NewManager(newStubStore())

	if err := m.RegisterSection(&stubSection{id: "llm"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.RegisterSection(&stubSection{id: "llm"}); err == nil {
		t.Error("expected error for duplicate section ID")
	}

	if _, ok := m.GetSection("llm"); !ok {
		t.Error("registered section should be retrievable")
	}
	if _, ok := m.GetSection("absent"); ok {
		t.Error("unregistered section should not be found")
	}
}

func TestManagerSectionOrder(t *testing.T) {
	m := NewManager(newStubStore())

	ids := []string{"llm", "logservice", "cache", "monitor"}
	for _, id := range ids {
		if err := m.RegisterSection(&stubSection{id: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sections := m.GetSections()
	if len(sections) != len(ids) {
		t.Fatalf("expected %d sections, got %d", len(ids), len(sections))
	}
	for i, section := range sections {
		if section.ID() != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], section.ID())
		}
	}
}

func TestManagerLoadAll(t *testing.T) {
	store := newStubStore()
	store.sections["llm"] = map[string]interface{}{"model": "gpt-4o"}

	m := NewManager(store)
	section := &stubSection{id: "llm"}
	if err := m.RegisterSection(section); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.LoadAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if section.data["model"] != "gpt-4o" {
		t.Errorf("section should receive stored data, got %v", section.data)
	}
}

func TestManagerLoadAllStoreError(t *testing.T) {
	store := newStubStore()
	store.loadErr = fmt.Errorf("disk unhappy")

	m := NewManager(store)
	if err := m.LoadAll(); err == nil {
		t.Error("expected load error to propagate")
	}
}

func TestManagerSaveAll(t *testing.T) {
	t.Run("writes every section and persists", func(t *testing.T) {
		store := newStubStore()
		m := NewManager(store)

		section := &stubSection{id: "llm", data: map[string]interface{}{"model": "gpt-4o"}}
		if err := m.RegisterSection(section); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := m.SaveAll(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !store.saved {
			t.Error("store should be saved")
		}
		if store.sections["llm"]["model"] != "gpt-4o" {
			t.Errorf("section data should be written, got %v", store.sections)
		}
	})

	t.Run("validation failure aborts the save", func(t *testing.T) {
		store := newStubStore()
		m := NewManager(store)

		section := &stubSection{id: "llm", validateErr: fmt.Errorf("model missing")}
		if err := m.RegisterSection(section); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := m.SaveAll(); err == nil {
			t.Error("expected validation error")
		}
		if store.saved {
			t.Error("store should not be saved after a validation failure")
		}
	})
}
