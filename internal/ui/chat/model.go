// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/pdfchat-tui/internal/document"
	"github.com/jeranaias/pdfchat-tui/internal/dropzone"
	"github.com/jeranaias/pdfchat-tui/internal/export"
	"github.com/jeranaias/pdfchat-tui/internal/markup"
	"github.com/jeranaias/pdfchat-tui/internal/model"
	"github.com/jeranaias/pdfchat-tui/internal/session"
	"github.com/jeranaias/pdfchat-tui/internal/ui/components"
	"github.com/jeranaias/pdfchat-tui/internal/ui/styles"
)

// field identifies the focused input.
type field int

const (
	fieldKey field = iota
	fieldDocument
	fieldQuestion
	fieldCount
)

// Placeholders of the question input.
const (
	placeholderLocked   = "Set an API key and upload a PDF to start chatting"
	placeholderWaiting  = "Waiting for the answer..."
	placeholderQuestion = "Ask a question about the document..."
)

// Options configures a Model.
type Options struct {
	// Session is required.
	Session *session.Session
	Theme   *styles.Theme
	Logger  *zap.Logger

	// Server is shown in the header.
	Server string

	// Drops delivers drop zone events; nil disables the drop zone.
	Drops   <-chan dropzone.Event
	DropDir string

	LabelResetDelay time.Duration
	ExportDir       string
	ExportFormat    string

	// InitialKey is registered on start. InitialDocument is uploaded once
	// the key is accepted, or prefilled in the path field without a key.
	InitialKey      string
	InitialDocument string
}

// Model is the chat screen.
type Model struct {
	sess   *session.Session
	theme  *styles.Theme
	logger *zap.Logger
	keyMap KeyMap

	ctx    context.Context
	cancel context.CancelFunc

	keyInput  textinput.Model
	pathInput textinput.Model
	question  textarea.Model
	viewport  viewport.Model
	spinner   components.Spinner

	header    *components.Header
	messages  *components.MessageList
	dropZone  *components.DropZone
	statusBar *components.StatusBar
	notice    components.NoticeModal

	focus field

	drops           <-chan dropzone.Event
	labelResetDelay time.Duration
	exportDir       string
	exportFormat    string
	initialKey      string
	initialDocument string

	// lastLen and lastID detect transcript changes for auto-scroll.
	lastLen int
	lastID  string

	flash    string
	flashSeq int

	width  int
	height int
}

// New creates the chat model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	format := opts.ExportFormat
	if format == "" {
		format = export.FormatMarkdown
	}

	ki := textinput.New()
	ki.Prompt = ""
	ki.Placeholder = "Paste your API key"
	ki.EchoMode = textinput.EchoPassword
	ki.EchoCharacter = '*'
	ki.CharLimit = 512
	ki.SetValue(opts.InitialKey)

	pi := textinput.New()
	pi.Prompt = ""
	pi.Placeholder = "Path to a PDF (paste or type, then Enter)"
	pi.CharLimit = 4096
	pi.SetValue(opts.InitialDocument)

	ta := textarea.New()
	ta.Placeholder = placeholderLocked
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 8192
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	vp := viewport.New(80, 10)

	ctx, cancel := context.WithCancel(context.Background())

	messages := components.NewMessageList(theme)
	messages.SetDropDir(opts.DropDir)

	header := components.NewHeader(theme)
	header.SetServer(opts.Server)

	dz := components.NewDropZone(theme)
	if opts.Drops != nil {
		dz.Dir = opts.DropDir
	}

	m := Model{
		sess:            opts.Session,
		theme:           theme,
		logger:          logger.Named("tui"),
		keyMap:          DefaultKeyMap(),
		ctx:             ctx,
		cancel:          cancel,
		keyInput:        ki,
		pathInput:       pi,
		question:        ta,
		viewport:        vp,
		spinner:         components.NewThinkingSpinner(theme),
		header:          header,
		messages:        messages,
		dropZone:        dz,
		statusBar:       components.NewStatusBar(theme),
		notice:          components.NewNoticeModal(theme),
		drops:           opts.Drops,
		labelResetDelay: opts.LabelResetDelay,
		exportDir:       opts.ExportDir,
		exportFormat:    format,
		initialKey:      opts.InitialKey,
		initialDocument: opts.InitialDocument,
		width:           80,
		height:          24,
	}

	if opts.InitialKey != "" && opts.InitialDocument == "" {
		m.setFocus(fieldDocument)
	} else {
		m.setFocus(fieldKey)
	}
	m.sync()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink, the drop zone listener and the initial
// credential registration.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if cmd := waitForDrop(m.drops); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.initialKey != "" {
		if k, ok := m.sess.BeginCredential(m.initialKey); ok {
			cmds = append(cmds, registerKeyCmd(m.ctx, m.sess.Backend(), k))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case credentialResultMsg:
		return m.handleCredentialResult(msg)

	case labelResetMsg:
		m.sess.ResetSaveLabel()
		m.sync()
		return m, nil

	case inspectResultMsg:
		return m.handleInspectResult(msg)

	case uploadResultMsg:
		m.sess.CompleteIngest(msg.doc, msg.resp, msg.err)
		m.sync()
		return m, nil

	case askResultMsg:
		m.sess.CompleteQuestion(msg.resp, msg.err)
		m.spinner.Stop()
		m.sync()
		return m, nil

	case DropEventMsg:
		return m.handleDrop(msg)

	case dropClosedMsg:
		m.drops = nil
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			cmd := m.setFlash("Copy failed: " + msg.err.Error())
			return m, cmd
		}
		cmd := m.setFlash(fmt.Sprintf("Copied answer (%d chars)", msg.chars))
		return m, cmd

	case exportResultMsg:
		if msg.err != nil {
			m.logger.Warn("export failed", zap.Error(msg.err))
			cmd := m.setFlash("Export failed: " + msg.err.Error())
			return m, cmd
		}
		m.logger.Info("transcript exported", zap.String("path", msg.path))
		cmd := m.setFlash("Exported to " + msg.path)
		return m, cmd

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.sync()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTranscript()
		return m, cmd
	}

	return m.updateFocused(msg)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.sync()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.cancel()
		return m, tea.Quit
	}

	// A visible notice swallows every key until acknowledged.
	if m.notice.IsVisible() {
		if key.Matches(msg, m.keyMap.Dismiss) {
			m.sess.DismissNotice()
			m.notice.Hide()
			m.sync()
		}
		return m, nil
	}

	// A path pasted outside the key and document fields is a drop.
	if isPasteBurst(msg) && m.focus == fieldQuestion {
		if p, ok := dropzone.PathFromPaste(string(msg.Runes)); ok {
			m.pathInput.SetValue(p)
			return m, inspectCmd(p)
		}
	}

	switch {
	case key.Matches(msg, m.keyMap.NextField):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keyMap.PrevField):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case key.Matches(msg, m.keyMap.Copy):
		return m.copyLastAnswer()
	case key.Matches(msg, m.keyMap.Export):
		return m.exportTranscript()
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	submit := key.Matches(msg, m.keyMap.Submit) || key.Matches(msg, m.keyMap.Send)
	switch m.focus {
	case fieldKey:
		if submit {
			return m.submitCredential()
		}
	case fieldDocument:
		if submit {
			return m.submitDocument()
		}
	case fieldQuestion:
		if !m.sess.Controls().QuestionEnabled {
			return m, nil
		}
		if submit {
			return m.submitQuestion()
		}
	}
	return m.updateFocused(msg)
}

// isPasteBurst reports whether msg carries several runes at once. Typed keys
// arrive one rune per message; a paste arrives as a single burst.
func isPasteBurst(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) > 1
}

// updateFocused forwards msg to the focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldKey:
		m.keyInput, cmd = m.keyInput.Update(msg)
	case fieldDocument:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case fieldQuestion:
		m.question, cmd = m.question.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// CREDENTIAL
// =============================================================================

func (m Model) submitCredential() (tea.Model, tea.Cmd) {
	if m.sess.Controls().Saving {
		return m, nil
	}
	k, ok := m.sess.BeginCredential(m.keyInput.Value())
	if !ok {
		return m, nil
	}
	m.sync()
	return m, registerKeyCmd(m.ctx, m.sess.Backend(), k)
}

func (m Model) handleCredentialResult(msg credentialResultMsg) (tea.Model, tea.Cmd) {
	m.sess.CompleteCredential(msg.resp, msg.err)

	var cmds []tea.Cmd
	if msg.err == nil {
		cmds = append(cmds, labelResetCmd(m.labelResetDelay))
		if m.initialDocument != "" {
			cmds = append(cmds, inspectCmd(m.initialDocument))
			m.initialDocument = ""
		}
	}
	m.sync()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// DOCUMENT
// =============================================================================

func (m Model) submitDocument() (tea.Model, tea.Cmd) {
	p := document.CleanPath(m.pathInput.Value())
	if p == "" {
		return m, nil
	}
	return m, inspectCmd(p)
}

func (m Model) handleInspectResult(msg inspectResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Debug("document rejected", zap.String("path", msg.path), zap.Error(msg.err))
		m.sess.Notify(session.NoticeError, inspectErrorText(msg.path, msg.err))
		m.sync()
		return m, nil
	}
	return m.startIngest(msg.doc)
}

func (m Model) startIngest(doc *document.Document) (tea.Model, tea.Cmd) {
	if err := m.sess.BeginIngest(doc); err != nil {
		m.sync()
		return m, nil
	}
	m.sync()
	return m, uploadCmd(m.ctx, m.sess.Backend(), doc)
}

func inspectErrorText(path string, err error) string {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return "File not found: " + path
	case errors.Is(err, document.ErrNotRegular):
		return "Not a file: " + path
	default:
		return "Could not read " + path
	}
}

func (m Model) handleDrop(msg DropEventMsg) (tea.Model, tea.Cmd) {
	next := waitForDrop(m.drops)

	switch msg.Event.Kind {
	case dropzone.Hover:
		m.sess.SetDropHover(true)
	case dropzone.Leave:
		m.sess.SetDropHover(false)
	case dropzone.Drop:
		m.sess.SetDropHover(false)
		m.pathInput.SetValue(msg.Event.Path)
		m.sync()
		return m, tea.Batch(next, inspectCmd(msg.Event.Path))
	}
	m.sync()
	return m, next
}

// =============================================================================
// QUESTION
// =============================================================================

func (m Model) submitQuestion() (tea.Model, tea.Cmd) {
	q, ok := m.sess.BeginQuestion(m.question.Value())
	if !ok {
		return m, nil
	}
	m.question.Reset()
	spin := m.spinner.Start()
	m.sync()
	return m, tea.Batch(askCmd(m.ctx, m.sess.Backend(), q), spin)
}

// =============================================================================
// CLIPBOARD / EXPORT
// =============================================================================

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	last := m.sess.Transcript().LastOf(model.RoleAssistant)
	if last == nil || last.Text == "" {
		cmd := m.setFlash("No answer to copy")
		return m, cmd
	}
	return m, copyCmd(markup.Strip(last.Text))
}

func (m Model) exportTranscript() (tea.Model, tea.Cmd) {
	tr := m.sess.Transcript()
	if tr.IsEmpty() {
		cmd := m.setFlash("Nothing to export")
		return m, cmd
	}

	docName := ""
	if doc := m.sess.Document(); doc != nil {
		docName = doc.Name
	}
	rec := export.FromTranscript(tr, docName, m.sess.Controls().Models)
	opts := export.DefaultOptions()
	if m.exportDir != "" {
		opts.OutputDir = m.exportDir
	}
	return m, exportCmd(rec, m.exportFormat, opts)
}

func (m *Model) setFlash(text string) tea.Cmd {
	m.flash = text
	m.flashSeq++
	m.sync()
	return flashClearCmd(m.flashSeq)
}

// =============================================================================
// STATE SYNC
// =============================================================================

// setFocus moves keyboard focus to f.
func (m *Model) setFocus(f field) {
	m.focus = f
	m.keyInput.Blur()
	m.pathInput.Blur()
	m.question.Blur()

	switch f {
	case fieldKey:
		m.keyInput.Focus()
	case fieldDocument:
		m.pathInput.Focus()
	case fieldQuestion:
		m.question.Focus()
	}
}

// sync copies session state into the components. Call it after every
// session mutation.
func (m *Model) sync() {
	c := m.sess.Controls()

	if c.FocusQuestion {
		m.setFocus(fieldQuestion)
		m.sess.FocusHandled()
	}

	switch {
	case c.QuestionEnabled:
		m.question.Placeholder = placeholderQuestion
	case m.sess.InFlight():
		m.question.Placeholder = placeholderWaiting
	default:
		m.question.Placeholder = placeholderLocked
	}

	m.dropZone.Label = c.DocumentLabel
	m.dropZone.Detail = c.DocumentDetail
	m.dropZone.Hover = c.DropHover
	m.dropZone.Uploading = c.Uploading

	m.statusBar.KeyStatus = c.KeyStatus
	m.statusBar.KeyAccepted = c.KeyAccepted
	m.statusBar.ChatStatus = c.ChatStatus
	m.statusBar.Status = statusOf(c.ChatStatusKind)
	m.statusBar.Models = c.Models
	m.statusBar.Flash = m.flash
	if doc := m.sess.Document(); doc != nil {
		m.statusBar.Document = doc.Name
	} else {
		m.statusBar.Document = ""
	}

	if !m.notice.IsVisible() {
		if n, ok := m.sess.CurrentNotice(); ok {
			m.notice.Show(n.Text, n.Kind == session.NoticeError)
		}
	}

	m.layout()
	m.refreshTranscript()
}

// refreshTranscript re-renders the transcript and scrolls to the newest
// entry whenever an entry was appended or removed.
func (m *Model) refreshTranscript() {
	tr := m.sess.Transcript()
	m.messages.SetEntries(tr.Entries())
	m.messages.SpinnerFrame = m.spinner.Frame()
	m.viewport.SetContent(m.messages.View())

	lastID := ""
	if last := tr.Last(); last != nil {
		lastID = last.ID
	}
	if tr.Len() != m.lastLen || lastID != m.lastID {
		m.lastLen = tr.Len()
		m.lastID = lastID
		m.viewport.GotoBottom()
	}
}

func statusOf(k session.StatusKind) styles.Status {
	switch k {
	case session.StatusKindBusy:
		return styles.StatusBusy
	case session.StatusKindReady:
		return styles.StatusReady
	case session.StatusKindError:
		return styles.StatusError
	default:
		return styles.StatusIdle
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the session the model drives.
func (m Model) Session() *session.Session {
	return m.sess
}

// Close cancels outstanding requests.
func (m Model) Close() {
	m.cancel()
}
