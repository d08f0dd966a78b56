package dashboard

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/intake"
	"github.com/sells-group/leadflow/internal/model"
	outmocks "github.com/sells-group/leadflow/internal/outreach/mocks"
	sinkmocks "github.com/sells-group/leadflow/internal/sink/mocks"
)

type fixture struct {
	sink    *sinkmocks.MockSink
	gen     *outmocks.MockGenerator
	sender  *outmocks.MockSender
	metrics *Metrics
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sink:    sinkmocks.NewMockSink(t),
		gen:     outmocks.NewMockGenerator(t),
		sender:  outmocks.NewMockSender(t),
		metrics: NewMetrics(),
	}
	f.ctrl = NewController(Deps{
		Intake:    intake.NewService(f.sink),
		Sink:      f.sink,
		Generator: f.gen,
		Sender:    f.sender,
		Metrics:   f.metrics,
	})
	return f
}

func TestRefreshAndSend_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var appended []any
	f.sink.On("Append", mock.Anything, mock.AnythingOfType("model.Lead")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(model.Lead).Row() }).
		Return(nil).Once()
	f.gen.On("Generate", mock.Anything, "Jane", "Healthcare").Return("Hi Jane", nil).Once()
	f.sender.On("Send", mock.Anything, "jane@x.com", "Hi Jane").Return(nil).Once()
	f.sink.On("Statuses", mock.Anything, 1).Return([]string{"Contacted"}, nil).Once()

	s := NewSession()
	s.Input = Input{FileName: "leads.csv", File: []byte("Jane,jane@x.com,Healthcare,New,3\n")}

	report, view := f.ctrl.RefreshAndSend(ctx, s)

	assert.Equal(t, []any{"Jane", "jane@x.com", "Healthcare", "New", 3, ""}, appended)
	assert.Equal(t, 1, report.Attempted)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Failed)
	assert.NotEmpty(t, report.RunID.String())

	require.Len(t, view.Rows, 1)
	assert.Equal(t, Row{Name: "Jane", Email: "jane@x.com", Industry: "Healthcare", Status: "Contacted", Score: 2}, view.Rows[0])
	assert.Equal(t, 2, s.Leads[0].Score)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.leadsIngested.WithLabelValues("csv")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.outreachEmails.WithLabelValues(ResultSent)), 0)
}

func TestRefreshAndSend_IsolatesFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil).Times(4)
	f.gen.On("Generate", mock.Anything, "A", mock.Anything).
		Return("", apperr.NewExternalServiceError("openai", "generate email", assert.AnError)).Once()
	f.gen.On("Generate", mock.Anything, "C", mock.Anything).Return("body C", nil).Once()
	f.gen.On("Generate", mock.Anything, "D", mock.Anything).Return("body D", nil).Once()
	f.sender.On("Send", mock.Anything, "c@x.com", "body C").
		Return(apperr.NewExternalServiceError("smtp", "send", assert.AnError)).Once()
	f.sender.On("Send", mock.Anything, "d@x.com", "body D").Return(nil).Once()
	f.sink.On("Statuses", mock.Anything, 4).Return([]string{"New"}, nil).Once()

	s := NewSession()
	s.Input = Input{FileName: "leads.csv", File: []byte("A,a@x.com\nB,\nC,c@x.com\nD,d@x.com\n")}

	report, view := f.ctrl.RefreshAndSend(ctx, s)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, view.Rows, 4)
	for _, r := range view.Rows {
		assert.Equal(t, "New", r.Status)
	}

	var errors int
	for _, m := range view.Messages {
		if m.Level == LevelError {
			errors++
		}
	}
	assert.Equal(t, 2, errors)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, "a@x.com", mock.Anything)
}

func TestRefreshAndSend_UsesSessionIndustries(t *testing.T) {
	f := newFixture(t)

	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	f.gen.On("Generate", mock.Anything, "Unknown", "Unknown").Return("b", nil).Once()
	f.sender.On("Send", mock.Anything, "x@y.com", "b").Return(nil).Once()
	f.sink.On("Statuses", mock.Anything, 1).Return([]string{}, nil).Once()

	s := NewSession()
	s.Input = Input{Emails: "x@y.com"}
	s.Industries = []string{"Unknown"}

	_, view := f.ctrl.RefreshAndSend(context.Background(), s)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 2, view.Rows[0].Score)
	assert.Equal(t, []string{"Unknown"}, view.Industries)
}

func TestRefreshAndSend_LoadFailureSendsNothing(t *testing.T) {
	f := newFixture(t)

	s := NewSession()
	s.Input = Input{FileName: "leads.csv", File: []byte{0xff, 0xfe}}

	report, view := f.ctrl.RefreshAndSend(context.Background(), s)
	assert.Zero(t, report.Attempted)
	assert.True(t, view.Empty())
	assert.Equal(t, EmptyPlaceholder, view.Placeholder)
	require.NotEmpty(t, view.Messages)
	assert.Equal(t, LevelError, view.Messages[0].Level)
	assert.Contains(t, view.Messages[0].Text, "Could not read csv input")
}

func TestLoad_Precedence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sink.On("Append", mock.Anything, mock.MatchedBy(func(l model.Lead) bool { return l.Name == "Jane" })).Return(nil).Once()

	s := NewSession()
	s.Input = Input{FileName: "leads.csv", File: []byte("Jane,jane@x.com"), Emails: "ignored@x.com"}
	require.NoError(t, f.ctrl.Load(ctx, s))
	require.Len(t, s.Leads, 1)
	assert.Equal(t, "Jane", s.Leads[0].Name)
}

func TestLoad_EmptyInputClearsLeads(t *testing.T) {
	f := newFixture(t)

	s := NewSession()
	s.Leads = []model.Lead{model.NewLead("Old", "", "", "", 0)}
	require.NoError(t, f.ctrl.Load(context.Background(), s))
	assert.Empty(t, s.Leads)
}

func TestLoad_SinkFailure(t *testing.T) {
	f := newFixture(t)

	f.sink.On("Append", mock.Anything, mock.Anything).
		Return(apperr.NewExternalServiceError("sheets", "append row", assert.AnError)).Once()

	s := NewSession()
	s.Input = Input{Emails: "a@x.com, b@x.com"}
	err := f.ctrl.Load(context.Background(), s)
	require.Error(t, err)
	assert.True(t, apperr.IsExternal(err))
	assert.Empty(t, s.Leads)
	require.Len(t, s.Messages, 1)
	assert.Contains(t, s.Messages[0].Text, "sheets failed during append row")
}

func TestRunSearch_ReplacesLeads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sink.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("Statuses", mock.Anything, mock.Anything).Return([]string{"Qualified", "New"}, nil)

	s := NewSession()
	s.Input = Input{Emails: "a@x.com,b@x.com"}
	view := f.ctrl.RunSearch(ctx, s)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Qualified", view.Rows[0].Status)

	s.Input = Input{Emails: "c@x.com"}
	view = f.ctrl.RunSearch(ctx, s)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "c@x.com", view.Rows[0].Email)
}

func TestRender_StatusFallbacks(t *testing.T) {
	f := newFixture(t)

	s := NewSession()
	s.Leads = []model.Lead{
		model.NewLead("A", "a@x.com", "Tech Solutions", "", 0),
		model.NewLead("B", "b@x.com", "Retail", "", 0),
		model.NewLead("C", "c@x.com", "Healthcare", "", 0),
	}
	s.Leads[0].JobTitle = "Technology Manager"

	f.sink.On("Statuses", mock.Anything, 3).Return([]string{"Won", ""}, nil).Once()

	view := f.ctrl.Render(context.Background(), s)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "Won", view.Rows[0].Status)
	assert.Equal(t, "New", view.Rows[1].Status)
	assert.Equal(t, "New", view.Rows[2].Status)
	assert.Equal(t, 12, view.Rows[0].Score)
	assert.Equal(t, 0, view.Rows[1].Score)
	assert.Equal(t, 2, view.Rows[2].Score)
}

func TestRender_StatusErrorReportedOnce(t *testing.T) {
	f := newFixture(t)

	s := NewSession()
	s.Leads = []model.Lead{
		model.NewLead("A", "a@x.com", "", "", 0),
		model.NewLead("B", "b@x.com", "", "", 0),
	}
	f.sink.On("Statuses", mock.Anything, 2).
		Return(nil, apperr.NewExternalServiceError("sheets", "read status", assert.AnError)).Once()

	view := f.ctrl.Render(context.Background(), s)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "New", view.Rows[0].Status)
	assert.Equal(t, "New", view.Rows[1].Status)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, LevelWarn, view.Messages[0].Level)
}

func TestRender_RepeatedStatusErrorsDoNotAccumulate(t *testing.T) {
	f := newFixture(t)

	s := NewSession()
	s.Leads = []model.Lead{model.NewLead("A", "a@x.com", "", "", 0)}
	s.info("Loaded 1 leads from emails input.")
	f.sink.On("Statuses", mock.Anything, 1).
		Return(nil, apperr.NewExternalServiceError("sheets", "read status", assert.AnError)).Times(3)

	var view View
	for range 3 {
		view = f.ctrl.Render(context.Background(), s)
	}

	require.Len(t, view.Messages, 2)
	assert.Equal(t, LevelInfo, view.Messages[0].Level)
	assert.Equal(t, LevelWarn, view.Messages[1].Level)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, LevelInfo, s.Messages[0].Level)
}

func TestRender_Empty(t *testing.T) {
	f := newFixture(t)

	view := f.ctrl.Render(context.Background(), NewSession())
	assert.True(t, view.Empty())
	assert.Equal(t, "No leads loaded yet.", view.Placeholder)
	f.sink.AssertNotCalled(t, "Statuses", mock.Anything, mock.Anything)
}

func TestParseIndustries(t *testing.T) {
	assert.Equal(t, []string{"Technology", "Health Care"}, ParseIndustries(" Technology, ,Health Care,"))
	assert.Nil(t, ParseIndustries(""))
}
