package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/RMahshie/scanlist/internal/device"
	"github.com/RMahshie/scanlist/internal/netutil"
	"github.com/RMahshie/scanlist/internal/repository/memory"
	"github.com/RMahshie/scanlist/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService implements automation.Service for testing
type MockService struct {
	mock.Mock
}

func (m *MockService) StartRun(ctx context.Context, host string) (*models.Run, error) {
	args := m.Called(ctx, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Run), args.Error(1)
}

func (m *MockService) ProcessRun(ctx context.Context, runID uuid.UUID, creds device.Credentials) error {
	args := m.Called(ctx, runID, creds)
	return args.Error(0)
}

func (m *MockService) Run(ctx context.Context, creds device.Credentials) (*models.Run, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Run), args.Error(1)
}

// MockArchive implements storage.ReportArchive for testing
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) PutReport(ctx context.Context, key string, body []byte) error {
	return m.Called(ctx, key, body).Error(0)
}

func (m *MockArchive) GetReport(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockArchive) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func newRun(id uuid.UUID, status string, createdAt time.Time) *models.Run {
	return &models.Run{
		ID:        id.String(),
		Host:      "192.168.88.1",
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCreateRun(t *testing.T) {
	runID := uuid.New()
	mockSvc := &MockService{}
	processed := make(chan device.Credentials, 1)

	mockSvc.On("StartRun", mock.Anything, "192.168.88.1").
		Return(newRun(runID, models.StatusPending, time.Now()), nil)
	mockSvc.On("ProcessRun", mock.Anything, runID, mock.AnythingOfType("device.Credentials")).
		Run(func(args mock.Arguments) {
			processed <- args.Get(2).(device.Credentials)
		}).
		Return(nil)

	handler := NewRunHandler(memory.NewRunRepository(), nil, mockSvc)

	req := &models.CreateRunRequest{}
	req.Body.Host = "192.168.88.1"
	req.Body.Username = "admin"
	req.Body.Password = "secret"

	resp, err := handler.CreateRun(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 202, resp.Status)
	assert.Equal(t, runID.String(), resp.Body.ID)
	assert.Equal(t, models.StatusPending, resp.Body.Status)

	select {
	case creds := <-processed:
		assert.Equal(t, device.Credentials{Host: "192.168.88.1", Username: "admin", Password: "secret"}, creds)
	case <-time.After(2 * time.Second):
		t.Fatal("run was not processed")
	}
	mockSvc.AssertExpectations(t)
}

func TestCreateRun_Errors(t *testing.T) {
	tests := []struct {
		name       string
		startErr   error
		wantStatus int
	}{
		{
			name:       "invalid address",
			startErr:   &netutil.InvalidAddressError{Address: "300.1.1.1"},
			wantStatus: 400,
		},
		{
			name:       "repository failure",
			startErr:   assert.AnError,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockService{}
			mockSvc.On("StartRun", mock.Anything, "300.1.1.1").Return(nil, tt.startErr)

			handler := NewRunHandler(memory.NewRunRepository(), nil, mockSvc)

			req := &models.CreateRunRequest{}
			req.Body.Host = "300.1.1.1"
			req.Body.Username = "admin"

			_, err := handler.CreateRun(context.Background(), req)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))

			mockSvc.AssertNotCalled(t, "ProcessRun", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := newRun(uuid.New(), models.StatusCompleted, base)
	newer := newRun(uuid.New(), models.StatusPending, base.Add(time.Minute))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	handler := NewRunHandler(repo, nil, &MockService{})

	resp, err := handler.ListRuns(ctx, &models.ListRunsRequest{Limit: 20})
	require.NoError(t, err)
	require.Len(t, resp.Body.Runs, 2)
	assert.Equal(t, newer.ID, resp.Body.Runs[0].ID)

	resp, err = handler.ListRuns(ctx, &models.ListRunsRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Body.Runs, 1)
}

func TestListRuns_Empty(t *testing.T) {
	handler := NewRunHandler(memory.NewRunRepository(), nil, &MockService{})

	resp, err := handler.ListRuns(context.Background(), &models.ListRunsRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Body.Runs)
	assert.Empty(t, resp.Body.Runs)
}

func TestGetRunStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	require.NoError(t, repo.Create(ctx, newRun(runID, models.StatusPending, time.Now())))
	require.NoError(t, repo.UpdateStatus(ctx, runID, models.StatusProcessing, 40))

	handler := NewRunHandler(repo, nil, &MockService{})

	resp, err := handler.GetRunStatus(ctx, &models.GetRunStatusRequest{ID: runID.String()})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, resp.Body.Status)
	assert.Equal(t, 40, resp.Body.Progress)
	assert.Equal(t, "Selecting frequencies...", resp.Body.Message)
	assert.Nil(t, resp.Body.ScanList)
}

func TestGetRunStatus_Errors(t *testing.T) {
	handler := NewRunHandler(memory.NewRunRepository(), nil, &MockService{})

	_, err := handler.GetRunStatus(context.Background(), &models.GetRunStatusRequest{ID: "not-a-uuid"})
	assert.Equal(t, 400, statusOf(t, err))

	_, err = handler.GetRunStatus(context.Background(), &models.GetRunStatusRequest{ID: uuid.NewString()})
	assert.Equal(t, 404, statusOf(t, err))
}

func TestGetRunReport(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	key := "reports/" + runID.String() + ".json"

	require.NoError(t, repo.Create(ctx, newRun(runID, models.StatusPending, time.Now())))
	require.NoError(t, repo.StoreReport(ctx, &models.RunReport{
		ID:       uuid.NewString(),
		RunID:    runID.String(),
		Ranked:   []int{5180, 5200},
		ScanList: "5180,5200",
	}, &key))
	require.NoError(t, repo.UpdateStatus(ctx, runID, models.StatusCompleted, 100))

	mockArchive := &MockArchive{}
	mockArchive.On("GenerateDownloadURL", mock.Anything, key).Return("https://example.com/report", nil)

	handler := NewRunHandler(repo, mockArchive, &MockService{})

	resp, err := handler.GetRunReport(ctx, &models.GetRunReportRequest{ID: runID.String()})
	require.NoError(t, err)
	assert.Equal(t, "5180,5200", resp.Body.ScanList)
	assert.Equal(t, []int{5180, 5200}, resp.Body.Ranked)
	assert.Equal(t, "https://example.com/report", resp.Body.ReportURL)
	mockArchive.AssertExpectations(t)
}

func TestGetRunReport_NotCompleted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	require.NoError(t, repo.Create(ctx, newRun(runID, models.StatusPending, time.Now())))
	require.NoError(t, repo.UpdateStatus(ctx, runID, models.StatusProcessing, 70))

	handler := NewRunHandler(repo, nil, &MockService{})

	_, err := handler.GetRunReport(ctx, &models.GetRunReportRequest{ID: runID.String()})
	assert.Equal(t, 409, statusOf(t, err))
}

func TestGetRunReport_URLFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	key := "reports/" + runID.String() + ".json"

	require.NoError(t, repo.Create(ctx, newRun(runID, models.StatusPending, time.Now())))
	require.NoError(t, repo.StoreReport(ctx, &models.RunReport{RunID: runID.String()}, &key))
	require.NoError(t, repo.UpdateStatus(ctx, runID, models.StatusCompleted, 100))

	mockArchive := &MockArchive{}
	mockArchive.On("GenerateDownloadURL", mock.Anything, key).Return("", assert.AnError)

	handler := NewRunHandler(repo, mockArchive, &MockService{})

	resp, err := handler.GetRunReport(ctx, &models.GetRunReportRequest{ID: runID.String()})
	require.NoError(t, err)
	assert.Empty(t, resp.Body.ReportURL)
}

func TestGetRunReport_FallsBackToArchive(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	key := "reports/" + runID.String() + ".json"

	run := newRun(runID, models.StatusCompleted, time.Now())
	run.ReportKey = &key
	require.NoError(t, repo.Create(ctx, run))

	archived := []byte(`{"run_id":"` + runID.String() + `","ranked":[5480,5180],"scan_list":"5180,5480"}`)
	mockArchive := &MockArchive{}
	mockArchive.On("GetReport", mock.Anything, key).Return(archived, nil)
	mockArchive.On("GenerateDownloadURL", mock.Anything, key).Return("https://example.com/report", nil)

	handler := NewRunHandler(repo, mockArchive, &MockService{})

	resp, err := handler.GetRunReport(ctx, &models.GetRunReportRequest{ID: runID.String()})
	require.NoError(t, err)
	assert.Equal(t, runID.String(), resp.Body.RunID)
	assert.Equal(t, []int{5480, 5180}, resp.Body.Ranked)
	assert.Equal(t, "5180,5480", resp.Body.ScanList)
	mockArchive.AssertExpectations(t)
}

func TestGetRunReport_MissingEverywhere(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRunRepository()
	runID := uuid.New()
	key := "reports/" + runID.String() + ".json"

	run := newRun(runID, models.StatusCompleted, time.Now())
	run.ReportKey = &key
	require.NoError(t, repo.Create(ctx, run))

	mockArchive := &MockArchive{}
	mockArchive.On("GetReport", mock.Anything, key).Return(nil, assert.AnError)

	handler := NewRunHandler(repo, mockArchive, &MockService{})

	_, err := handler.GetRunReport(ctx, &models.GetRunReportRequest{ID: runID.String()})
	assert.Equal(t, 500, statusOf(t, err))
	mockArchive.AssertNotCalled(t, "GenerateDownloadURL", mock.Anything, mock.Anything)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status   string
		progress int
		want     string
	}{
		{models.StatusPending, 0, "Run queued..."},
		{models.StatusProcessing, 10, "Running spectral scan..."},
		{models.StatusProcessing, 40, "Selecting frequencies..."},
		{models.StatusProcessing, 70, "Applying scan-list..."},
		{models.StatusProcessing, 90, "Saving report..."},
		{models.StatusCompleted, 100, "Scan-list applied"},
		{models.StatusFailed, 10, "Run failed"},
		{"bogus", 0, "Unknown status"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, statusMessage(tt.status, tt.progress))
		})
	}
}
