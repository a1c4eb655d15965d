package tui

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/state"
)

// fakeBackend records every call and answers from canned values.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	features *api.Features
	info     *api.SessionInfo
	files    *api.FilesResponse
	sessions []string
	send     *api.SendResponse
	workflow *api.Workflow
	err      map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		features: &api.Features{
			ToolsAvailable:    []string{"read_file", "run_shell"},
			WorkflowTemplates: []string{"code_review"},
		},
		info:  &api.SessionInfo{ModelName: "gemini-test"},
		files: &api.FilesResponse{},
		send:  &api.SendResponse{Response: strPtr("Hello there")},
		err:   map[string]error{},
	}
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err[name]
}

func (f *fakeBackend) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeBackend) setFiles(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp := &api.FilesResponse{}
	for _, n := range names {
		resp.Files = append(resp.Files, api.FileDescriptor{Name: n})
	}
	f.files = resp
}

func (f *fakeBackend) InitializeSession(context.Context) (*api.Features, error) {
	return f.features, f.record("InitializeSession")
}

func (f *fakeBackend) ApplyWorkflow(context.Context, string, string) (*api.Workflow, error) {
	return f.workflow, f.record("ApplyWorkflow")
}

func (f *fakeBackend) GetToolHelp(_ context.Context, name string) (string, error) {
	return "usage: " + name, f.record("GetToolHelp")
}

func (f *fakeBackend) SetAutoApprove(context.Context, bool) (string, error) {
	return "", f.record("SetAutoApprove")
}

func (f *fakeBackend) SearchMemory(context.Context, string) ([]api.MemoryEntry, error) {
	return nil, f.record("SearchMemory")
}

func (f *fakeBackend) GetProjectAnalysis(context.Context) (*api.ProjectAnalysis, error) {
	return &api.ProjectAnalysis{}, f.record("GetProjectAnalysis")
}

func (f *fakeBackend) SetProjectPath(context.Context, string) (string, error) {
	return "", f.record("SetProjectPath")
}

func (f *fakeBackend) SendMessage(context.Context, string, bool) (*api.SendResponse, error) {
	return f.send, f.record("SendMessage")
}

func (f *fakeBackend) GetSessionInfo(context.Context) (*api.SessionInfo, error) {
	return f.info, f.record("GetSessionInfo")
}

func (f *fakeBackend) ListFiles(context.Context) (*api.FilesResponse, error) {
	err := f.record("ListFiles")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files, err
}

func (f *fakeBackend) DeleteFile(context.Context, string) (string, error) {
	return "File deleted", f.record("DeleteFile")
}

func (f *fakeBackend) ClearFiles(context.Context) (string, error) {
	return "", f.record("ClearFiles")
}

func (f *fakeBackend) ClearConversation(context.Context) (string, error) {
	return "", f.record("ClearConversation")
}

func (f *fakeBackend) UploadFiles(_ context.Context, paths []string) (*api.CountResponse, error) {
	return &api.CountResponse{Count: len(paths)}, f.record("UploadFiles")
}

func (f *fakeBackend) UploadFilesEnhanced(_ context.Context, files []api.FileContent) (*api.CountResponse, error) {
	return &api.CountResponse{Count: len(files)}, f.record("UploadFilesEnhanced")
}

func (f *fakeBackend) ListSessions(context.Context) ([]string, error) {
	return f.sessions, f.record("ListSessions")
}

func (f *fakeBackend) SaveSession(context.Context, string) (string, error) {
	return "", f.record("SaveSession")
}

func (f *fakeBackend) LoadSession(context.Context, string) (string, error) {
	return "", f.record("LoadSession")
}

func (f *fakeBackend) DeleteSession(context.Context, string) (string, error) {
	return "", f.record("DeleteSession")
}

func (f *fakeBackend) GetSessionFiles(context.Context) ([]api.SessionFile, error) {
	return nil, f.record("GetSessionFiles")
}

func (f *fakeBackend) ReuploadSessionFiles(_ context.Context, paths []string) (*api.CountResponse, error) {
	return &api.CountResponse{Count: len(paths)}, f.record("ReuploadSessionFiles")
}

func (f *fakeBackend) UpdateSettings(context.Context, api.Settings) (string, error) {
	return "", f.record("UpdateSettings")
}

func (f *fakeBackend) ExecuteTool(context.Context, string, map[string]any) (*api.ToolOutcome, error) {
	return &api.ToolOutcome{Success: true, Output: "ok"}, f.record("ExecuteTool")
}

func (f *fakeBackend) UploadPDFFromURL(context.Context, string, string) (string, error) {
	return "", f.record("UploadPDFFromURL")
}

func (f *fakeBackend) Shutdown(context.Context) (string, error) {
	return "", f.record("Shutdown")
}

var _ Backend = (*fakeBackend)(nil)

func strPtr(s string) *string { return &s }

// cmdTimeout bounds how long a single command may run before its result is
// dropped. Timers such as cursor blinks never finish in time.
const cmdTimeout = 200 * time.Millisecond

// driver feeds messages to the model and runs the returned commands until
// nothing is left.
type driver struct {
	t       *testing.T
	m       *appModel
	backend *fakeBackend
}

func newDriver(t *testing.T, opts ...Option) *driver {
	t.Helper()

	backend := newFakeBackend()
	m := newModel(t.Context(), backend, state.New(true), opts...)
	d := &driver{t: t, m: m, backend: backend}
	d.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

// init runs the startup commands.
func (d *driver) init() {
	d.t.Helper()
	d.process(run(d.m.Init()))
}

func (d *driver) send(msg tea.Msg) {
	d.t.Helper()
	d.process([]tea.Msg{msg})
}

func (d *driver) process(queue []tea.Msg) {
	d.t.Helper()
	for n := 0; len(queue) > 0; n++ {
		if n > 500 {
			d.t.Fatal("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		if isTimer(msg) {
			continue
		}
		_, cmd := d.m.Update(msg)
		queue = append(queue, run(cmd)...)
	}
}

// run executes cmd, unwrapping batches and sequences, and returns the
// messages produced within cmdTimeout.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}
	if msg == nil {
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		return runAll(batch)
	}

	// tea.Sequence uses an unexported slice type
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice {
		var cmds []tea.Cmd
		for i := range v.Len() {
			if elem := v.Index(i); elem.CanInterface() {
				if c, ok := elem.Interface().(tea.Cmd); ok {
					cmds = append(cmds, c)
				}
			}
		}
		var msgs []tea.Msg
		for _, c := range cmds {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}

	return []tea.Msg{msg}
}

// runAll runs batched commands concurrently and keeps their order.
func runAll(cmds []tea.Cmd) []tea.Msg {
	results := make([][]tea.Msg, len(cmds))
	var wg sync.WaitGroup
	for i, c := range cmds {
		wg.Go(func() {
			results[i] = run(c)
		})
	}
	wg.Wait()
	return slices.Concat(results...)
}

// isTimer reports messages from cursor blinks and spinner animation.
func isTimer(msg tea.Msg) bool {
	pkg := reflect.TypeOf(msg).PkgPath()
	return strings.HasSuffix(pkg, "/cursor") ||
		strings.HasSuffix(pkg, "/spinner") ||
		strings.HasSuffix(pkg, "/textinput")
}

var errBackend = errors.New("backend unavailable")
