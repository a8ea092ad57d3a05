package mcptool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jongio/toastnotifier/logutil"
	"github.com/jongio/toastnotifier/notify"
	"github.com/jongio/toastnotifier/security"
	"github.com/jongio/toastnotifier/toast"
	"github.com/jongio/toastnotifier/urlutil"
	"github.com/jongio/toastnotifier/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"
)

const (
	toolShow      = "show_notification"
	toolRender    = "render_notification"
	toolTemplates = "list_templates"

	// maxTimeout bounds timeout_seconds so a tool call cannot block forever.
	maxTimeout = 5 * time.Minute
)

var log = logutil.NewLogger("mcp")

// Options configure a Server.
type Options struct {
	// Delivery shows notifications.
	Delivery notify.Delivery
	// Config supplies the application id prefix.
	Config notify.Config
	// DefaultTimeout applies when a call gives no timeout_seconds.
	DefaultTimeout time.Duration
	// CallsPerSecond and Burst limit tool calls; CallsPerSecond 0 disables limiting.
	CallsPerSecond float64
	Burst          int
}

// Server handles the notifier's MCP tools.
type Server struct {
	opts    Options
	limiter *rate.Limiter
	mcp     *server.MCPServer
}

// New creates a server and registers its tools.
func New(info *version.Info, opts Options) *Server {
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 30 * time.Second
	}
	s := &Server{opts: opts}
	if opts.CallsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.CallsPerSecond), burst)
	}

	s.mcp = server.NewMCPServer(info.Name, info.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.mcp.AddTool(showTool(), s.handleShow)
	s.mcp.AddTool(renderTool(), s.handleRender)
	s.mcp.AddTool(templatesTool(), s.handleTemplates)
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves requests on stdin and stdout until stdin is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func notificationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithArray("lines",
			mcp.Description("Text lines in display order (0 to 3 lines, matching the template)"),
			mcp.WithStringItems(),
		),
		mcp.WithString("image",
			mcp.Description("Image to display: an absolute local file path or an http(s) URL"),
		),
		mcp.WithString("template",
			mcp.Description("Template name; inferred from the lines and image when omitted"),
			mcp.Enum(templateNames()...),
		),
		mcp.WithBoolean("long",
			mcp.Description("Display for about 25 seconds instead of 7"),
		),
		mcp.WithString("sound",
			mcp.Description("Default, IM, Mail, Reminder, SMS, Off, or Alarm/Call with an optional variant such as Call;5"),
		),
		mcp.WithBoolean("loop",
			mcp.Description("Repeat the selected sound"),
		),
		mcp.WithString("launch",
			mcp.Description("Activation argument stored in the notification, typically a URL"),
		),
	}
}

func showTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Show a desktop toast notification and wait until the user clicks or dismisses it"),
		mcp.WithString("app_id",
			mcp.Required(),
			mcp.Description("Identifies the sender of the notification"),
		),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("How long to wait for the user, at most 300 seconds"),
		),
	}
	return mcp.NewTool(toolShow, append(opts, notificationOptions()...)...)
}

func renderTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Render a toast notification document as XML without showing it"),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	return mcp.NewTool(toolRender, append(opts, notificationOptions()...)...)
}

func templatesTool() mcp.Tool {
	return mcp.NewTool(toolTemplates,
		mcp.WithDescription("List the available toast templates with their text line count and image support"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func templateNames() []string {
	var names []string
	for _, info := range toast.Catalog() {
		names = append(names, info.Name)
	}
	return names
}

func (s *Server) checkRateLimit(tool string) error {
	if s.limiter != nil && !s.limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", tool)
	}
	return nil
}

// requestFromArgs reads the notification arguments shared by the tools.
func requestFromArgs(args map[string]any) (toast.Request, error) {
	var r toast.Request
	var err error
	if r.Lines, err = getStringSlice(args, "lines"); err != nil {
		return r, err
	}
	if r.Image, err = getString(args, "image"); err != nil {
		return r, err
	}
	if r.Template, err = getString(args, "template"); err != nil {
		return r, err
	}
	if r.LongDuration, err = getBool(args, "long"); err != nil {
		return r, err
	}
	if r.Sound, err = getString(args, "sound"); err != nil {
		return r, err
	}
	if r.LoopSound, err = getBool(args, "loop"); err != nil {
		return r, err
	}
	if r.Launch, err = getString(args, "launch"); err != nil {
		return r, err
	}

	if err := checkImage(r.Image); err != nil {
		return r, fmt.Errorf("image rejected: %w", err)
	}
	return r, nil
}

func checkImage(ref string) error {
	switch {
	case ref == "":
		return nil
	case urlutil.IsURL(ref):
		return urlutil.ValidateImage(ref)
	default:
		return security.ValidatePath(ref)
	}
}

func buildDocument(args map[string]any) (*toast.Document, error) {
	r, err := requestFromArgs(args)
	if err != nil {
		return nil, err
	}
	b, err := toast.NewBuilderFromRequest(r)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func (s *Server) timeout(args map[string]any) (time.Duration, error) {
	seconds, ok, err := getNumber(args, "timeout_seconds")
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.opts.DefaultTimeout, nil
	}
	if seconds <= 0 {
		return 0, errors.New("timeout_seconds must be positive")
	}
	d := time.Duration(seconds * float64(time.Second))
	if d > maxTimeout {
		d = maxTimeout
	}
	return d, nil
}

func (s *Server) handleShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkRateLimit(toolShow); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := getArgsMap(request)

	appID, err := getString(args, "app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := security.ValidateAppID(appID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeout, err := s.timeout(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := buildDocument(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	id := s.opts.Config.ApplicationID(appID)
	log.WithOperation(toolShow).Debug("showing notification", "app", id, "template", doc.TemplateName())
	outcome, err := notify.NewSession(s.opts.Delivery).ShowAndWait(ctx, id, doc, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return marshalToolResult(outcome.Report())
}

func (s *Server) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkRateLimit(toolRender); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := buildDocument(getArgsMap(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	xml, err := doc.XML()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(xml)), nil
}

type templateResult struct {
	Name      string `json:"name"`
	TextLines int    `json:"textLines"`
	Image     bool   `json:"image"`
}

func (s *Server) handleTemplates(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []templateResult
	for _, info := range toast.Catalog() {
		out = append(out, templateResult{Name: info.Name, TextLines: info.TextSlots, Image: info.HasImage})
	}
	return marshalToolResult(out)
}
