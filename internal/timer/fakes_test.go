package timer

import (
	"errors"
	"strconv"
)

type mapKV struct {
	m      map[string]string
	setErr error
}

func newMapKV() *mapKV { return &mapKV{m: map[string]string{}} }

func (kv *mapKV) Get(key string) (string, bool, error) {
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *mapKV) Set(key, value string) error {
	if kv.setErr != nil {
		return kv.setErr
	}
	kv.m[key] = value
	return nil
}

func (kv *mapKV) Delete(key string) error {
	delete(kv.m, key)
	return nil
}

var errStoreFull = errors.New("store full")

// fakeSurface records what the engine rendered.
type fakeSurface struct {
	counter      bool
	text         string
	color        RGB
	renders      int
	promptOpen   bool
	promptValue  string
	promptOpened int
}

func (s *fakeSurface) RenderCounter(text string, color RGB) {
	s.counter = true
	s.text = text
	s.color = color
	s.renders++
}

func (s *fakeSurface) RemoveCounter() {
	s.counter = false
	s.text = ""
}

func (s *fakeSurface) PromptOpen() bool { return s.promptOpen }

func (s *fakeSurface) OpenPrompt(minutes int) {
	s.promptOpen = true
	s.promptValue = strconv.Itoa(minutes)
	s.promptOpened++
}

func (s *fakeSurface) PromptValue() (string, bool) {
	if !s.promptOpen {
		return "", false
	}
	return s.promptValue, true
}

func (s *fakeSurface) ClosePrompt() {
	s.promptOpen = false
	s.promptValue = ""
}
