package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/conso-maestro/conso-sync/internal/apperror"
	"github.com/conso-maestro/conso-sync/internal/fakeremote"
	"github.com/conso-maestro/conso-sync/internal/logger"
	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/conso-maestro/conso-sync/internal/recall"
	"github.com/conso-maestro/conso-sync/internal/recall/repository"
	"github.com/conso-maestro/conso-sync/internal/remote"
)

var sampleRecall = model.RecallRecord{
	Category:               "Alimentation",
	Brand:                  "Fromagerie du Val",
	ModelReferences:        "Camembert 250g",
	Identification:         "Lot 4521, DLC 12/03/2024",
	Reason:                 "Présence de Listeria monocytogenes",
	Risks:                  "Listeria monocytogenes (agent de la listériose)",
	SanitaryRecommendation: "Consulter un médecin en cas de fièvre",
	RiskDescription:        "Incubation jusqu'à 8 semaines",
	ConsumerAction:         "Ne plus consommer, rapporter au point de vente",
}

func newTestUseCase(t *testing.T, timeout time.Duration) (*fakeremote.Server, recall.UseCase) {
	t.Helper()
	srv := fakeremote.New()
	baseURL := srv.Start()
	t.Cleanup(srv.Close)
	client := remote.NewClient(remote.Config{BaseURL: baseURL, Timeout: timeout}, nil, logger.NewNop())
	return srv, NewRecallUseCase(repository.NewHTTPRepository(client), logger.NewNop())
}

func TestFetchRecalls_Found(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)
	srv.SetRecalls("u1", []model.RecallRecord{sampleRecall})

	res, err := uc.FetchRecalls(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if res.State != recall.RecallsFound {
		t.Errorf("Expected RecallsFound, got %s", res.State)
	}
	if len(res.Records) != 1 || res.Records[0] != sampleRecall {
		t.Errorf("Expected verbatim record, got %+v", res.Records)
	}
	if !reflect.DeepEqual(uc.LastRecalls("u1"), res.Records) {
		t.Error("Expected last recalls to match the fetched collection")
	}
}

func TestFetchRecalls_EmptyIsInformational(t *testing.T) {
	cases := []struct {
		name  string
		setup func(srv *fakeremote.Server)
	}{
		{"empty list", func(srv *fakeremote.Server) { srv.SetRecalls("u1", []model.RecallRecord{}) }},
		{"missing field", func(srv *fakeremote.Server) {}},
		{"null body", func(srv *fakeremote.Server) { srv.SetRecallBody("u1", "null") }},
		{"null recalls", func(srv *fakeremote.Server) { srv.SetRecallBody("u1", `{"recalls":null}`) }},
		{"false body", func(srv *fakeremote.Server) { srv.SetRecallBody("u1", "false") }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv, uc := newTestUseCase(t, time.Second)
			c.setup(srv)

			res, err := uc.FetchRecalls(context.Background(), "u1")
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if res.State != recall.NoRecallsFound {
				t.Errorf("Expected NoRecallsFound, got %s", res.State)
			}
			if len(res.Records) != 0 {
				t.Errorf("Expected no records, got %+v", res.Records)
			}
		})
	}
}

func TestFetchRecalls_ServiceErrorIsNoRecallsFound(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)
	srv.SetRecalls("u1", []model.RecallRecord{sampleRecall})
	if _, err := uc.FetchRecalls(context.Background(), "u1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	srv.SetShouldFail(fakeremote.RouteCheckRecall, true)
	res, err := uc.FetchRecalls(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if res.State != recall.NoRecallsFound {
		t.Errorf("Expected NoRecallsFound, got %s", res.State)
	}
	if len(res.Records) != 0 {
		t.Errorf("Expected no records, got %+v", res.Records)
	}
	if len(uc.LastRecalls("u1")) != 0 {
		t.Errorf("Expected last recalls cleared, got %+v", uc.LastRecalls("u1"))
	}
}

func TestFetchRecalls_NetworkFailureIsFetchFailed(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)
	srv.SetRecalls("u1", []model.RecallRecord{sampleRecall})
	if _, err := uc.FetchRecalls(context.Background(), "u1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	srv.Close()
	res, err := uc.FetchRecalls(context.Background(), "u1")
	if !errors.Is(err, apperror.ErrFetchFailed) {
		t.Fatalf("Expected FetchFailed, got: %v", err)
	}
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("Expected a transport error, got status %d", statusErr.StatusCode)
	}
	if res != nil {
		t.Errorf("Expected nil result, got %+v", res)
	}
	if len(uc.LastRecalls("u1")) != 1 {
		t.Error("Expected last recalls kept after a failed fetch")
	}
}

func TestFetchRecalls_UndecodableBodyIsFetchFailed(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)
	srv.SetRecallBody("u1", `{"recalls": "oops"}`)

	_, err := uc.FetchRecalls(context.Background(), "u1")
	if !errors.Is(err, apperror.ErrFetchFailed) {
		t.Fatalf("Expected FetchFailed, got: %v", err)
	}
}

func TestFetchRecalls_Timeout(t *testing.T) {
	srv, uc := newTestUseCase(t, 50*time.Millisecond)
	release := srv.Hold(fakeremote.RouteCheckRecall)
	t.Cleanup(release)

	_, err := uc.FetchRecalls(context.Background(), "u1")
	if !errors.Is(err, apperror.ErrFetchFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected FetchFailed wrapping deadline exceeded, got: %v", err)
	}
}

func TestFetchRecalls_ReplaceOnFetch(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)
	srv.SetRecalls("u1", []model.RecallRecord{sampleRecall})
	uc.FetchRecalls(context.Background(), "u1")

	srv.SetRecalls("u1", []model.RecallRecord{})
	res, err := uc.FetchRecalls(context.Background(), "u1")
	if err != nil || res.State != recall.NoRecallsFound {
		t.Fatalf("Expected NoRecallsFound, got %+v (err %v)", res, err)
	}
	if len(uc.LastRecalls("u1")) != 0 {
		t.Errorf("Expected last recalls replaced by empty collection, got %+v", uc.LastRecalls("u1"))
	}
}

func TestFetchRecalls_EmptyUserID(t *testing.T) {
	srv, uc := newTestUseCase(t, time.Second)

	_, err := uc.FetchRecalls(context.Background(), "")
	if !errors.Is(err, apperror.ErrFetchFailed) || !errors.Is(err, recall.ErrEmptyUserID) {
		t.Fatalf("Expected FetchFailed wrapping ErrEmptyUserID, got: %v", err)
	}
	if srv.Calls(fakeremote.RouteCheckRecall) != 0 {
		t.Error("Expected no remote call")
	}
}
