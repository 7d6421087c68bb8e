package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/session"
	"github.com/goliatone/go-actorrunner/pkg/testsupport"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

type stubDriver struct {
	inputs       []string
	inputErr     error
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) infoContaining(sub string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

const crawlerSchema = `{"schema":{"count":5,"startUrl":"","notes":{"a":1}},"actorInfo":{"title":"Crawler"}}`

func newTestSession(t *testing.T, client *testsupport.Client, opts ...session.Option) *session.Session {
	t.Helper()
	s, err := session.New(actor.Actor{ID: "crawler"}, "key", client, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRun_EditsExecutesAndGoesBack(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(testsupport.SchemaResult(t, crawlerSchema), nil),
		RunActorFunc: testsupport.StaticRun(
			testsupport.RunResult(t, `{"status":"SUCCEEDED","runId":"r1","results":{"pages":2}}`), nil),
	}
	var back bool
	s := newTestSession(t, client, session.WithOnBack(func() { back = true }))

	driver := &stubDriver{
		inputs:    []string{"7"},
		selectIdx: []int{1, actionRun, actionBack},
		textAreas: []string{"{\n  \"a\": 1\n}"},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("run: %v", err)
	}

	inputs := client.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("expected one run, got %d", len(inputs))
	}
	want := value.MustFromAny(map[string]any{
		"count":    7,
		"startUrl": DefaultURLSuggestions[0],
		"notes":    map[string]any{"a": 1},
	})
	if diff := cmp.Diff(want, inputs[0]); diff != "" {
		t.Fatalf("run input mismatch (-want +got):\n%s", diff)
	}
	if got := inputs[0].Keys(); !cmp.Equal(got, []string{"count", "startUrl", "notes"}) {
		t.Fatalf("input order = %v", got)
	}

	wantPrompts := []string{
		"count (number)",
		"startUrl (string)",
		"notes (object)",
		"What next?",
		"What next?",
		"Leave Crawler?",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt sequence mismatch (-want +got):\n%s", diff)
	}
	if !driver.infoContaining("Status: SUCCEEDED") {
		t.Fatalf("expected result report, got %q", driver.infoMessages)
	}
	if !back {
		t.Fatalf("expected back callback")
	}
}

func TestRun_SchemaFailureIsReported(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(actor.SchemaResult{}, testsupport.ResponseError(404, `{"error":"not found"}`)),
	}
	s := newTestSession(t, client)
	driver := &stubDriver{}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	err = r.Run(context.Background(), s)
	var sessErr *session.Error
	if !errors.As(err, &sessErr) {
		t.Fatalf("expected session error, got %v", err)
	}
	if diff := cmp.Diff([]string{"! not found"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if len(driver.prompts) != 0 {
		t.Fatalf("expected no prompts, got %v", driver.prompts)
	}
}

func TestRun_FailedRunReturnsToMenu(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(testsupport.SchemaResult(t, `{"schema":{"q":"go"}}`), nil),
		RunActorFunc: testsupport.StaticRun(actor.RunResult{},
			testsupport.ResponseError(500, `{"statusMessage":"Actor timed out","runId":"r9"}`)),
	}
	s := newTestSession(t, client)

	driver := &stubDriver{
		inputs:    []string{"go", "extra", "true"},
		selectIdx: []int{actionRun, actionAddField, actionBack, actionBack},
		confirm:   []bool{false, true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.infoContaining("Error: Actor execution failed: Actor timed out") {
		t.Fatalf("expected failure report, got %q", driver.infoMessages)
	}
	if !driver.infoContaining("Run ID: r9") {
		t.Fatalf("expected run id in report, got %q", driver.infoMessages)
	}

	extra, ok := s.Input().Get("extra")
	if !ok || extra.Kind() != value.KindBoolean || !extra.Bool() {
		t.Fatalf("expected added boolean field, got %v (present=%v)", extra.Any(), ok)
	}
	if driver.confirmPos != 2 {
		t.Fatalf("expected two confirm prompts, got %d", driver.confirmPos)
	}
}

func TestRun_AddedFieldIsEditable(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(testsupport.SchemaResult(t, `{"schema":{"q":"go"}}`), nil),
	}
	s := newTestSession(t, client)

	driver := &stubDriver{
		inputs:    []string{"go", "extra", "1", "go", "2"},
		selectIdx: []int{actionAddField, actionEdit, actionBack},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantPrompts := []string{
		"q (string)",
		"What next?",
		"Field name",
		"extra value",
		"What next?",
		"q (string)",
		"extra (number)",
		"What next?",
		"Leave crawler?",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	extra, ok := s.Input().Get("extra")
	if !ok || extra.Kind() != value.KindNumber || extra.Num() != 2 {
		t.Fatalf("expected extra to be re-edited to 2, got %v (present=%v)", extra.Any(), ok)
	}
}

func TestRun_CustomURLAndDisabledSuggestions(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(testsupport.SchemaResult(t, `{"schema":{"url":"https://a.test"}}`), nil),
	}

	s := newTestSession(t, client)
	driver := &stubDriver{
		inputs:    []string{"https://b.test"},
		selectIdx: []int{len(DefaultURLSuggestions) + 1, actionBack},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Run(context.Background(), s); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, _ := s.Input().Get("url"); got.Str() != "https://b.test" {
		t.Fatalf("url = %q", got.Str())
	}

	s2 := newTestSession(t, client)
	driver2 := &stubDriver{
		inputs:    []string{"https://c.test"},
		selectIdx: []int{actionBack},
		confirm:   []bool{true},
	}
	r2, err := New(WithPromptDriver(driver2), WithURLSuggestions(nil))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r2.Run(context.Background(), s2); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver2.prompts[0] != "url (string)" || driver2.selectPos != 1 {
		t.Fatalf("expected plain input for url field, prompts=%v", driver2.prompts)
	}
}

func TestRun_AbortStopsFlow(t *testing.T) {
	client := &testsupport.Client{
		FetchSchemaFunc: testsupport.StaticSchema(testsupport.SchemaResult(t, `{"schema":{"q":"go"}}`), nil),
	}
	s := newTestSession(t, client)
	driver := &stubDriver{inputErr: ErrAborted}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if err := r.Run(context.Background(), s); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if client.RunCalls() != 0 {
		t.Fatalf("expected no runs")
	}
}

func TestRun_RequiresSession(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := r.Run(context.Background(), nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
