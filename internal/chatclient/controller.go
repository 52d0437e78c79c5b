// Package chatclient is the chat widget's conversation controller. It owns
// the message history, throttles sends, reveals replies word by word,
// handles rate-limit cooldowns and derives quick actions. It has no UI;
// the tui package renders its snapshots.
package chatclient

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/export"
	"github.com/nunajera/portfolio-backend/internal/portfolio"
	"github.com/nunajera/portfolio-backend/internal/store"
)

const (
	MinRequestInterval = 2 * time.Second
	MaxMessageLength   = 500
	StreamInterval     = 30 * time.Millisecond
	CooldownSeconds    = 30
	// HistoryWindow is how many past messages accompany a request.
	HistoryWindow = 10
)

// ApologyMessage is appended when a request fails for any reason other
// than rate limiting.
const ApologyMessage = "Sorry, I'm having trouble connecting right now. Please try again in a moment."

var wordRe = regexp.MustCompile(`\s*\S+`)

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	Messages          []internal.Message
	State             State
	Status            string
	CooldownRemaining int
	Open              bool
	Suggestions       []string
}

// InputDisabled reports whether the send control should be locked.
func (s Snapshot) InputDisabled() bool {
	return s.State == StateRateLimited
}

func (s Snapshot) Busy() bool {
	return s.State == StateAwaitingResponse
}

type Option func(*Controller)

func WithClock(clock Clock) Option { return func(c *Controller) { c.clock = clock } }
func WithLogger(logger *zap.Logger) Option { return func(c *Controller) { c.logger = logger } }
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clipboard = cb } }
func WithNavigator(n Navigator) Option { return func(c *Controller) { c.navigator = n } }
func WithDetector(d *Detector) Option { return func(c *Controller) { c.detector = d } }
func WithIDGenerator(f func() string) Option { return func(c *Controller) { c.newID = f } }
func WithExportDir(dir string) Option { return func(c *Controller) { c.exportDir = dir } }

type Controller struct {
	transport Transport
	history   *store.History
	clock     Clock
	logger    *zap.Logger
	detector  *Detector
	clipboard Clipboard
	navigator Navigator
	newID     func() string
	exportDir string

	mu        sync.Mutex
	messages  []internal.Message
	actions   map[string][]internal.QuickAction
	state     State
	status    string
	open      bool
	closed    bool
	lastSent  time.Time
	epoch     uint64
	cancelReq context.CancelFunc
	stream    *streamTask
	cooldown  *cooldown
	listeners []func()
	wg        sync.WaitGroup
}

// streamTask is the single active reveal. ends holds the byte offset
// just past each word of full.
type streamTask struct {
	id    string
	full  string
	ends  []int
	shown int
	timer Timer
}

type cooldown struct {
	remaining int
	ticker    Timer
	deadline  Timer
}

// New restores the persisted conversation and returns an idle controller.
func New(transport Transport, history *store.History, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		history:   history,
		clock:     RealClock{},
		logger:    zap.NewNop(),
		clipboard: SystemClipboard{},
		newID:     uuid.NewString,
		actions:   make(map[string][]internal.QuickAction),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.detector == nil {
		c.detector = NewDetector(portfolio.Default())
	}
	c.messages = history.Load()
	return c
}

// OnChange registers f to run after every state change. f runs outside
// the controller lock and may call back into it.
func (c *Controller) OnChange(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, f)
}

func (c *Controller) unlockAndNotify() {
	ls := c.listeners
	c.mu.Unlock()
	for _, f := range ls {
		f()
	}
}

// Send validates and throttles text, appends it and requests a reply in
// the background. A non-nil error means nothing was sent.
func (c *Controller) Send(text string) error {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return internal.ErrClosed
	}
	if text == "" {
		c.mu.Unlock()
		return internal.ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		err := &internal.ValidationError{
			Field:  "message",
			Reason: fmt.Sprintf("Message is too long. Please keep it under %d characters.", MaxMessageLength),
		}
		c.status = err.Reason
		c.unlockAndNotify()
		return err
	}

	switch c.state {
	case StateRateLimited:
		remaining := 0
		if c.cooldown != nil {
			remaining = c.cooldown.remaining
		}
		c.mu.Unlock()
		return &internal.RateLimitError{RetryAfter: time.Duration(remaining) * time.Second}
	case StateAwaitingResponse:
		c.mu.Unlock()
		return internal.ErrBusy
	}

	now := c.clock.Now()
	if !c.lastSent.IsZero() {
		if elapsed := now.Sub(c.lastSent); elapsed < MinRequestInterval {
			err := &ThrottleError{Wait: MinRequestInterval - elapsed}
			c.status = err.Error()
			c.unlockAndNotify()
			return err
		}
	}

	// Rejected sends above leave an active reveal untouched.
	if c.state == StateStreaming {
		c.finishStreamLocked()
	}

	history := c.recentLocked()
	c.lastSent = now
	c.messages = append(c.messages, internal.Message{
		ID:        c.newID(),
		Role:      internal.RoleUser,
		Content:   text,
		Timestamp: now,
	})
	c.history.Save(c.messages)
	c.state = StateAwaitingResponse
	c.status = ""

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelReq = cancel
	c.wg.Add(1)
	go c.request(ctx, cancel, c.epoch, text, history)

	c.unlockAndNotify()
	return nil
}

func (c *Controller) recentLocked() []internal.HistoryEntry {
	msgs := c.messages
	if len(msgs) > HistoryWindow {
		msgs = msgs[len(msgs)-HistoryWindow:]
	}
	out := make([]internal.HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, internal.HistoryEntry{Role: m.Role, Content: m.Content})
	}
	return out
}

func (c *Controller) request(ctx context.Context, cancel context.CancelFunc, epoch uint64, question string, history []internal.HistoryEntry) {
	defer c.wg.Done()
	defer cancel()

	reply, err := c.transport.Chat(ctx, question, history)

	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		// cleared or closed while in flight
		c.mu.Unlock()
		return
	}
	c.cancelReq = nil
	if err != nil {
		c.failLocked(err)
	} else {
		c.receiveLocked(question, reply)
	}
	c.unlockAndNotify()
}

func (c *Controller) receiveLocked(question, reply string) {
	id := c.newID()
	actions := c.detector.Detect(question, reply)
	c.actions[id] = actions

	c.messages = append(c.messages, internal.Message{
		ID:           id,
		Role:         internal.RoleAssistant,
		Content:      reply,
		Timestamp:    c.clock.Now(),
		IsStreaming:  true,
		QuickActions: actions,
	})
	c.history.Save(c.messages)
	c.startStreamLocked(id, reply)
}

func (c *Controller) failLocked(err error) {
	var rl *internal.RateLimitError
	if errors.As(err, &rl) {
		c.logger.Info("chat rate limited", zap.Duration("retry_after", rl.RetryAfter))
		c.startCooldownLocked(rl.RetryAfter)
		return
	}

	c.logger.Warn("chat request failed", zap.Error(err))
	c.messages = append(c.messages, internal.Message{
		ID:        c.newID(),
		Role:      internal.RoleAssistant,
		Content:   ApologyMessage,
		Timestamp: c.clock.Now(),
	})
	c.history.Save(c.messages)
	c.state = StateError
	c.status = describe(err)
}

// describe is the status line shown under the input for a failed request.
func describe(err error) string {
	var statusErr *internal.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	var netErr *internal.NetworkError
	if errors.As(err, &netErr) {
		return "Unable to reach the chat server. Check your connection and try again."
	}
	return err.Error()
}

func (c *Controller) startStreamLocked(id, full string) {
	c.finishStreamLocked()

	var ends []int
	for _, loc := range wordRe.FindAllStringIndex(full, -1) {
		ends = append(ends, loc[1])
	}
	task := &streamTask{id: id, full: full, ends: ends}
	c.stream = task
	c.state = StateStreaming
	if len(ends) == 0 {
		c.finishStreamLocked()
		return
	}
	task.timer = c.clock.AfterFunc(StreamInterval, func() { c.tick(task) })
}

func (c *Controller) tick(task *streamTask) {
	c.mu.Lock()
	if c.stream != task {
		c.mu.Unlock()
		return
	}
	task.shown++
	if task.shown >= len(task.ends) {
		c.finishStreamLocked()
	} else {
		if i := c.indexLocked(task.id); i >= 0 {
			c.messages[i].StreamingContent = task.full[:task.ends[task.shown-1]]
		}
		task.timer = c.clock.AfterFunc(StreamInterval, func() { c.tick(task) })
	}
	c.unlockAndNotify()
}

// finishStreamLocked completes the active reveal at once.
func (c *Controller) finishStreamLocked() {
	task := c.stream
	if task == nil {
		return
	}
	c.stream = nil
	if task.timer != nil {
		task.timer.Stop()
	}
	if i := c.indexLocked(task.id); i >= 0 {
		c.messages[i].IsStreaming = false
		c.messages[i].StreamingContent = ""
		c.messages[i].Content = task.full
	}
	if c.state == StateStreaming {
		c.state = StateIdle
	}
	c.history.Save(c.messages)
}

func (c *Controller) cancelStreamLocked() {
	if c.stream == nil {
		return
	}
	if c.stream.timer != nil {
		c.stream.timer.Stop()
	}
	c.stream = nil
}

// startCooldownLocked counts down CooldownSeconds in one-second ticks and
// also arms a timer for the server's Retry-After. Whichever finishes first
// ends the cooldown.
func (c *Controller) startCooldownLocked(retryAfter time.Duration) {
	c.stopCooldownLocked()
	if retryAfter <= 0 {
		retryAfter = CooldownSeconds * time.Second
	}

	cd := &cooldown{remaining: CooldownSeconds}
	c.cooldown = cd
	c.state = StateRateLimited
	c.status = ""
	cd.deadline = c.clock.AfterFunc(retryAfter, func() { c.endCooldown(cd) })
	cd.ticker = c.clock.AfterFunc(time.Second, func() { c.cooldownTick(cd) })
}

func (c *Controller) cooldownTick(cd *cooldown) {
	c.mu.Lock()
	if c.cooldown != cd {
		c.mu.Unlock()
		return
	}
	cd.remaining--
	if cd.remaining <= 0 {
		c.stopCooldownLocked()
		c.state = StateIdle
	} else {
		cd.ticker = c.clock.AfterFunc(time.Second, func() { c.cooldownTick(cd) })
	}
	c.unlockAndNotify()
}

func (c *Controller) endCooldown(cd *cooldown) {
	c.mu.Lock()
	if c.cooldown != cd {
		c.mu.Unlock()
		return
	}
	c.stopCooldownLocked()
	c.state = StateIdle
	c.unlockAndNotify()
}

func (c *Controller) stopCooldownLocked() {
	cd := c.cooldown
	if cd == nil {
		return
	}
	c.cooldown = nil
	if cd.ticker != nil {
		cd.ticker.Stop()
	}
	if cd.deadline != nil {
		cd.deadline.Stop()
	}
}

// Clear drops the conversation, in memory and in storage, leaving only
// the welcome message. Any in-flight reply is discarded and every timer
// is cancelled.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.epoch++
	if c.cancelReq != nil {
		c.cancelReq()
		c.cancelReq = nil
	}
	c.cancelStreamLocked()
	c.stopCooldownLocked()
	c.messages = c.history.Clear()
	c.actions = make(map[string][]internal.QuickAction)
	c.state = StateIdle
	c.status = ""
	c.unlockAndNotify()
}

// Close tears the controller down: the active reveal is finalized and
// saved, timers are stopped and the pending request, if any, is cancelled
// and waited for. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.epoch++
	if c.cancelReq != nil {
		c.cancelReq()
		c.cancelReq = nil
	}
	c.finishStreamLocked()
	c.stopCooldownLocked()
	c.state = StateIdle
	c.mu.Unlock()

	c.wg.Wait()
}

// SetOpen shows or hides the widget. It never affects a pending request.
func (c *Controller) SetOpen(open bool) {
	c.mu.Lock()
	c.open = open
	c.unlockAndNotify()
}

func (c *Controller) Toggle() bool {
	c.mu.Lock()
	c.open = !c.open
	open := c.open
	c.unlockAndNotify()
	return open
}

// Suggestions are offered only while the welcome message is alone.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestionsLocked()
}

func (c *Controller) suggestionsLocked() []string {
	if len(c.messages) != 1 || c.messages[0].ID != internal.WelcomeMessageID {
		return nil
	}
	out := make([]string, len(DefaultSuggestions))
	copy(out, DefaultSuggestions)
	return out
}

// MatchSuggestions filters the current suggestions against input.
func (c *Controller) MatchSuggestions(input string) []string {
	return MatchSuggestions(input, c.Suggestions())
}

func (c *Controller) indexLocked(id string) int {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// actionsLocked returns the memoized quick actions of message i, deriving
// them from the message and the question before it on first use.
func (c *Controller) actionsLocked(i int) []internal.QuickAction {
	m := c.messages[i]
	if m.Role != internal.RoleAssistant || m.ID == "" || m.ID == internal.WelcomeMessageID || m.Content == ApologyMessage {
		return nil
	}
	if a, ok := c.actions[m.ID]; ok {
		return a
	}
	question := ""
	for j := i - 1; j >= 0; j-- {
		if c.messages[j].Role == internal.RoleUser {
			question = c.messages[j].Content
			break
		}
	}
	a := c.detector.Detect(question, m.Content)
	c.actions[m.ID] = a
	return a
}

// QuickActions returns the actions attached to a message.
func (c *Controller) QuickActions(messageID string) []internal.QuickAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(messageID)
	if i < 0 {
		return nil
	}
	return c.actionsLocked(i)
}

// RunQuickAction performs action n (zero based) of a message.
func (c *Controller) RunQuickAction(messageID string, n int) error {
	c.mu.Lock()
	i := c.indexLocked(messageID)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("message %s not found", messageID)
	}
	actions := c.actionsLocked(i)
	nav := c.navigator
	c.mu.Unlock()

	if n < 0 || n >= len(actions) {
		return fmt.Errorf("no quick action %d", n+1)
	}
	if nav == nil {
		return errors.New("quick actions are not available")
	}
	a := actions[n]
	switch a.Type {
	case internal.ActionDownload:
		return nav.Download(a.Target)
	case internal.ActionScroll:
		return nav.ScrollTo(a.Target)
	case internal.ActionLink:
		return nav.OpenURL(a.Target)
	default:
		return fmt.Errorf("unknown quick action type %q", a.Type)
	}
}

// CopyMessage puts a message's final text on the clipboard.
func (c *Controller) CopyMessage(messageID string) error {
	c.mu.Lock()
	i := c.indexLocked(messageID)
	var text string
	if i >= 0 {
		text = c.messages[i].Content
	}
	c.mu.Unlock()
	if i < 0 {
		return fmt.Errorf("message %s not found", messageID)
	}
	return c.clipboard.WriteAll(text)
}

// LastReplyID is the id of the newest assistant message, or "".
func (c *Controller) LastReplyID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == internal.RoleAssistant {
			return c.messages[i].ID
		}
	}
	return ""
}

// Export writes the conversation to the export directory in format and
// returns the file path. Chat state is not touched on failure.
func (c *Controller) Export(format string) (string, error) {
	c.mu.Lock()
	msgs := make([]internal.Message, len(c.messages))
	copy(msgs, c.messages)
	dir := c.exportDir
	c.mu.Unlock()

	if dir == "" {
		dir = "."
	}
	path, err := export.ToFile(dir, format, msgs, c.clock.Now())
	if err != nil {
		c.logger.Error("export failed", zap.String("format", format), zap.Error(err))
		return "", err
	}
	c.logger.Info("chat exported", zap.String("path", path))
	return path, nil
}

// Snapshot returns a copy of everything the widget renders.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := make([]internal.Message, len(c.messages))
	copy(msgs, c.messages)
	for i := range msgs {
		msgs[i].QuickActions = c.actionsLocked(i)
	}
	remaining := 0
	if c.cooldown != nil {
		remaining = c.cooldown.remaining
	}
	return Snapshot{
		Messages:          msgs,
		State:             c.state,
		Status:            c.status,
		CooldownRemaining: remaining,
		Open:              c.open,
		Suggestions:       c.suggestionsLocked(),
	}
}
