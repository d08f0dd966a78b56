package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/intake"
	"github.com/sells-group/leadflow/internal/model"
	"github.com/sells-group/leadflow/internal/outreach"
	"github.com/sells-group/leadflow/internal/scorer"
	"github.com/sells-group/leadflow/internal/sink"
)

// Deps are the collaborators built once at startup.
type Deps struct {
	Intake     *intake.Service
	Sink       sink.Sink
	Generator  outreach.Generator
	Sender     outreach.Sender
	Industries []string
	Metrics    *Metrics
}

// Controller runs dashboard operations one at a time.
type Controller struct {
	deps Deps
	mu   sync.Mutex
}

// NewController returns a controller over deps.
func NewController(deps Deps) *Controller {
	return &Controller{deps: deps}
}

// Load replaces s.Leads from s.Input: the file when one is present, else
// the manual email list, else nothing. On error the lead list is empty, an
// error message is recorded and the error is returned.
func (c *Controller) Load(ctx context.Context, s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s.Messages = nil
	return c.load(ctx, s)
}

// RunSearch reloads the session input and renders it.
func (c *Controller) RunSearch(ctx context.Context, s *Session) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s.Messages = nil
	_ = c.load(ctx, s)
	return c.render(ctx, s)
}

// RefreshAndSend reloads the input, scores every lead against the session's
// industries and emails each lead that has an address. A failure for one
// lead is recorded and the batch continues.
func (c *Controller) RefreshAndSend(ctx context.Context, s *Session) (Report, View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s.Messages = nil
	report := Report{RunID: uuid.New()}

	if err := c.load(ctx, s); err != nil {
		return report, c.render(ctx, s)
	}

	s.Leads = scorer.ScoreAll(s.Leads, c.industries(s))

	log := zap.L().With(
		zap.String("component", "dashboard"),
		zap.String("session_id", s.ID.String()),
		zap.String("run_id", report.RunID.String()),
	)
	start := time.Now()

	for i, l := range s.Leads {
		if !l.HasEmail() {
			report.Skipped++
			c.deps.Metrics.RecordEmail(ResultSkipped)
			continue
		}
		report.Attempted++

		if err := c.sendOne(ctx, l); err != nil {
			report.Failed++
			c.deps.Metrics.RecordEmail(ResultFailed)
			log.Error("dashboard: outreach failed",
				zap.Int("row", sink.RowFor(i)),
				zap.String("email", l.Email),
				zap.Error(err),
			)
			s.fail(fmt.Sprintf("Failed to email %s: %s", l.Email, apperr.UserMessage(err)))
			continue
		}

		report.Sent++
		c.deps.Metrics.RecordEmail(ResultSent)
		s.info(fmt.Sprintf("Email sent to %s", l.Email))
	}

	log.Info("dashboard: outreach run complete",
		zap.Int("attempted", report.Attempted),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("elapsed", time.Since(start)),
	)
	s.info(fmt.Sprintf("Sent %d of %d emails (%d failed, %d without an address).",
		report.Sent, report.Attempted, report.Failed, report.Skipped))

	return report, c.render(ctx, s)
}

// Render builds the lead table without reloading input.
func (c *Controller) Render(ctx context.Context, s *Session) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.render(ctx, s)
}

func (c *Controller) sendOne(ctx context.Context, l model.Lead) error {
	body, err := c.deps.Generator.Generate(ctx, l.Name, l.Industry)
	if err != nil {
		return err
	}
	return c.deps.Sender.Send(ctx, l.Email, body)
}

func (c *Controller) load(ctx context.Context, s *Session) error {
	var (
		leads  []model.Lead
		source string
		err    error
	)

	switch {
	case s.Input.HasFile():
		source = intake.SourceForFile(s.Input.FileName)
		leads, err = c.deps.Intake.ImportFile(ctx, s.Input.FileName, s.Input.File)
	case s.Input.Emails != "":
		source = intake.SourceEmails
		leads, err = c.deps.Intake.ImportEmails(ctx, s.Input.Emails)
	default:
		s.Leads = []model.Lead{}
		return nil
	}

	if err != nil {
		s.Leads = []model.Lead{}
		zap.L().Error("dashboard: load failed",
			zap.String("component", "dashboard"),
			zap.String("session_id", s.ID.String()),
			zap.String("source", source),
			zap.Error(err),
		)
		s.fail(apperr.UserMessage(err))
		return err
	}

	s.Leads = leads
	c.deps.Metrics.RecordIngest(source, len(leads))
	if len(leads) > 0 {
		s.info(fmt.Sprintf("Loaded %d leads from %s input.", len(leads), source))
	} else {
		s.warn("The input contained no leads.")
	}
	return nil
}

func (c *Controller) render(ctx context.Context, s *Session) View {
	industries := c.industries(s)
	v := View{
		SessionID:  s.ID.String(),
		Industries: industries,
		Rows:       make([]Row, 0, len(s.Leads)),
	}

	// Session messages belong to the last operation; render-time warnings
	// are added to this view only.
	v.Messages = append([]Message(nil), s.Messages...)

	if len(s.Leads) == 0 {
		v.Placeholder = EmptyPlaceholder
		return v
	}

	statuses, err := c.deps.Sink.Statuses(ctx, len(s.Leads))
	if err != nil {
		zap.L().Warn("dashboard: status lookup failed",
			zap.String("component", "dashboard"),
			zap.String("session_id", s.ID.String()),
			zap.Error(err),
		)
		v.Messages = append(v.Messages, Message{
			Level: LevelWarn,
			Text:  "Could not read lead status: " + apperr.UserMessage(err),
		})
		statuses = nil
	}

	for i, l := range s.Leads {
		status := model.StatusNew
		if i < len(statuses) && statuses[i] != "" {
			status = statuses[i]
		}
		v.Rows = append(v.Rows, Row{
			Name:     l.Name,
			Email:    l.Email,
			Industry: l.Industry,
			Status:   status,
			Score:    scorer.Score(l, industries),
		})
	}

	return v
}

func (c *Controller) industries(s *Session) []string {
	if len(s.Industries) > 0 {
		return s.Industries
	}
	if len(c.deps.Industries) > 0 {
		return c.deps.Industries
	}
	return scorer.DefaultIndustries
}
