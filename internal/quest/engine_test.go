package quest

import (
	"context"
	"errors"
	"testing"

	"github.com/mkuznetsova/questbot/internal/domain"
)

func TestSubmitCodeGatedOnActiveQuest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := seedTeamAndTasks(f)

	if _, err := f.engine.SubmitCode(ctx, team.ChatID, 1, "alpha"); !errors.Is(err, domain.ErrQuestNotActive) {
		t.Fatalf("SubmitCode() error = %v, want ErrQuestNotActive", err)
	}
	if len(f.store.subs) != 0 {
		t.Error("gated submission still wrote a row")
	}
}

func TestSubmitCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := seedTeamAndTasks(f)
	f.store.state.IsActive = true

	tests := []struct {
		name        string
		ordinal     int
		code        string
		wantErr     error
		wantCorrect bool
	}{
		{name: "correct code", ordinal: 1, code: "ALPHA", wantCorrect: true},
		{name: "incorrect code recorded too", ordinal: 1, code: "nope", wantCorrect: false},
		{name: "unknown task", ordinal: 42, code: "x", wantErr: domain.ErrTaskNotFound},
		{name: "code against photo task", ordinal: 3, code: "x", wantErr: domain.ErrWrongTaskKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(f.store.subs)
			sub, err := f.engine.SubmitCode(ctx, team.ChatID, tt.ordinal, tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SubmitCode() error = %v, want %v", err, tt.wantErr)
				}
				if len(f.store.subs) != before {
					t.Error("failed submission wrote a row")
				}
				return
			}
			if err != nil {
				t.Fatalf("SubmitCode() error = %v", err)
			}
			if sub.IsCorrect != tt.wantCorrect {
				t.Errorf("IsCorrect = %v, want %v", sub.IsCorrect, tt.wantCorrect)
			}
			if sub.Value != tt.code {
				t.Errorf("Value = %q, want raw submitted text %q", sub.Value, tt.code)
			}
		})
	}

	if _, err := f.engine.SubmitCode(ctx, -999, 1, "alpha"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Errorf("unknown chat error = %v, want ErrTeamNotFound", err)
	}
}

func TestSubmitPhoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := seedTeamAndTasks(f)
	f.store.state.IsActive = true

	// Photo against a text task is rejected before anything is stored.
	if _, err := f.engine.SubmitPhoto(ctx, team.ChatID, 1, "ref.jpg"); !errors.Is(err, domain.ErrWrongTaskKind) {
		t.Fatalf("SubmitPhoto(text task) error = %v, want ErrWrongTaskKind", err)
	}
	if len(f.store.subs) != 0 {
		t.Fatal("rejected photo wrote a row")
	}

	sub, err := f.engine.SubmitPhoto(ctx, team.ChatID, 3, "ref.jpg")
	if err != nil {
		t.Fatalf("SubmitPhoto() error = %v", err)
	}
	if !sub.IsCorrect {
		t.Error("accepted photo evidence not recorded correct")
	}
	if sub.Value != "ref.jpg" {
		t.Errorf("Value = %q, want evidence reference", sub.Value)
	}
}

func TestResolvePhotoTargetGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := seedTeamAndTasks(f)

	if _, _, err := f.engine.ResolvePhotoTarget(ctx, team.ChatID, 3); !errors.Is(err, domain.ErrQuestNotActive) {
		t.Errorf("ResolvePhotoTarget() error = %v, want ErrQuestNotActive", err)
	}

	f.store.state.IsActive = true
	gotTeam, gotTask, err := f.engine.ResolvePhotoTarget(ctx, team.ChatID, 3)
	if err != nil {
		t.Fatalf("ResolvePhotoTarget() error = %v", err)
	}
	if gotTeam.ID != team.ID || gotTask.Ordinal != 3 {
		t.Errorf("resolved (%d, %d), want (%d, 3)", gotTeam.ID, gotTask.Ordinal, team.ID)
	}
}

func TestListTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := seedTeamAndTasks(f)
	f.store.settings[domain.SettingHeader] = "Шапка"
	f.store.settings[domain.SettingFooter] = "Подвал"

	if _, err := f.engine.ListTasks(ctx, team.ChatID); !errors.Is(err, domain.ErrQuestNotActive) {
		t.Fatalf("ListTasks() error = %v, want ErrQuestNotActive", err)
	}

	f.store.state.IsActive = true
	if _, err := f.engine.SubmitCode(ctx, team.ChatID, 2, "beta"); err != nil {
		t.Fatalf("SubmitCode() error = %v", err)
	}

	listing, err := f.engine.ListTasks(ctx, team.ChatID)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if listing.Header != "Шапка" || listing.Footer != "Подвал" {
		t.Errorf("header/footer = %q/%q", listing.Header, listing.Footer)
	}
	if len(listing.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(listing.Tasks))
	}
	if listing.Tasks[0].Latest != nil {
		t.Error("task 1 unexpectedly has a submission")
	}
	if listing.Tasks[1].Latest == nil || !listing.Tasks[1].Latest.IsCorrect {
		t.Error("task 2 missing its accepted submission")
	}
}

// End-to-end: induction, kickoff snapshot, then a scored code submission.
func TestQuestEndToEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.tasks = []domain.Task{
		{ID: f.store.id(), Ordinal: 3, Title: "Шифр", Rule: "answer42", Cost: 5, Kind: domain.TaskKindRegular},
	}
	f.store.admins[-300] = []domain.ChatUser{
		{ID: 1, Username: "u1"},
		{ID: 2, Username: "u2"},
	}

	if _, err := f.roster.RegisterChat(ctx, -300, "Команда А"); err != nil {
		t.Fatalf("RegisterChat() error = %v", err)
	}
	if len(f.store.members) != 2 {
		t.Fatalf("got %d members after induction, want 2", len(f.store.members))
	}

	// A new admin appears before kickoff; the snapshot imports only them.
	f.store.admins[-300] = append(f.store.admins[-300], domain.ChatUser{ID: 3, Username: "u3"})
	if err := f.lifecycle.Start(ctx, "yes"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(f.store.members) != 3 {
		t.Fatalf("got %d members after snapshot, want 3", len(f.store.members))
	}
	for _, m := range f.store.members {
		if !m.IsInitialMember {
			t.Errorf("member %d not initial", m.UserID)
		}
	}

	sub, err := f.engine.SubmitCode(ctx, -300, 3, "answer42")
	if err != nil {
		t.Fatalf("SubmitCode() error = %v", err)
	}
	if !sub.IsCorrect {
		t.Fatal("correct code not accepted")
	}

	team, _ := f.store.GetByChatID(ctx, -300)
	progress, err := f.score.Progress(ctx, team.ID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if progress.CorrectCount != 1 || progress.TotalPoints != 5 {
		t.Errorf("progress = %d correct, %d points, want 1/5", progress.CorrectCount, progress.TotalPoints)
	}
}
