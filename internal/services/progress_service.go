package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/looksmaxxai/LooksMaxxBack/internal/models"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyCompleted = errors.New("already completed")
)

// DateLayout is the calendar-day format completions are keyed on.
const DateLayout = "2006-01-02"

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type completionReader interface {
	ListForDate(ctx context.Context, userID int64, date string) ([]models.RoutineCompletion, error)
	CountForDate(ctx context.Context, userID int64, date string) (int, error)
}

type photoStatsReader interface {
	Stats(ctx context.Context, userID int64) (int, *time.Time, error)
}

// ProgressService is the progress ledger: it owns the completion -> XP/level/
// streak transition and the dashboard read side. All writes for one completion
// happen in a single transaction, and the XP fold is a server-side increment,
// so concurrent completions by the same user cannot lose updates.
type ProgressService struct {
	db             txBeginner
	userRepo       userReader
	completionRepo completionReader
	photoRepo      photoStatsReader
}

func NewProgressService(
	db txBeginner,
	userRepo userReader,
	completionRepo completionReader,
	photoRepo photoStatsReader,
) *ProgressService {
	return &ProgressService{
		db:             db,
		userRepo:       userRepo,
		completionRepo: completionRepo,
		photoRepo:      photoRepo,
	}
}

type CompletionResult struct {
	Completion   *models.RoutineCompletion `json:"completion"`
	Progress     *models.ProgressSnapshot  `json:"progress"`
	Achievements []models.Achievement      `json:"achievements"`
}

// Today returns the current UTC calendar day in completion-date form.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

func validDate(date string) bool {
	parsed, err := time.Parse(DateLayout, date)
	return err == nil && parsed.Format(DateLayout) == date
}

// RecordCompletion appends the completion fact for (user, item, date) and
// folds the item's XP reward into the user's gamification state. The item must
// belong to one of the caller's routines. A repeated same-day completion of
// the same item returns ErrAlreadyCompleted and changes nothing.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID, routineItemID int64, date string) (*CompletionResult, error) {
	if userID <= 0 || routineItemID <= 0 {
		return nil, ErrInvalidInput
	}
	if !validDate(date) {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRoutineRepo := repository.NewRoutineRepository(tx)
	txCompletionRepo := repository.NewCompletionRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)
	txAchievementRepo := repository.NewAchievementRepository(tx)

	item, err := txRoutineRepo.GetItemForUser(ctx, routineItemID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	completion, inserted, err := txCompletionRepo.Create(ctx, userID, routineItemID, date)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrAlreadyCompleted
	}

	snapshot, err := txUserRepo.ApplyCompletion(ctx, userID, item.XPReward, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	unlocked, err := s.unlockAchievements(ctx, txAchievementRepo, txCompletionRepo, userID, snapshot)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CompletionResult{
		Completion:   completion,
		Progress:     snapshot,
		Achievements: unlocked,
	}, nil
}

type achievementUnlocker interface {
	ListLocked(ctx context.Context, userID int64) ([]models.Achievement, error)
	Unlock(ctx context.Context, userID, achievementID int64) (bool, error)
}

type completionCounter interface {
	CountForUser(ctx context.Context, userID int64) (int, error)
}

func (s *ProgressService) unlockAchievements(
	ctx context.Context,
	achievementRepo achievementUnlocker,
	completionRepo completionCounter,
	userID int64,
	snapshot *models.ProgressSnapshot,
) ([]models.Achievement, error) {
	locked, err := achievementRepo.ListLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(locked) == 0 {
		return nil, nil
	}

	completionCount, err := completionRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var unlocked []models.Achievement
	for _, achievement := range locked {
		if !criterionMet(achievement.Criteria, snapshot, completionCount) {
			continue
		}
		fresh, err := achievementRepo.Unlock(ctx, userID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if fresh {
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked, nil
}

func criterionMet(criteria models.AchievementCriteria, snapshot *models.ProgressSnapshot, completionCount int) bool {
	switch criteria.Type {
	case models.CriterionLevel:
		return snapshot.Level >= criteria.Value
	case models.CriterionStreak:
		return snapshot.CurrentStreak >= criteria.Value
	case models.CriterionXP:
		return snapshot.TotalXP >= criteria.Value
	case models.CriterionCompletions:
		return completionCount >= criteria.Value
	default:
		return false
	}
}

// GetCompletionsForDate is a pure read of the completion facts for one
// calendar day.
func (s *ProgressService) GetCompletionsForDate(ctx context.Context, userID int64, date string) ([]models.RoutineCompletion, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	if !validDate(date) {
		return nil, ErrInvalidInput
	}
	return s.completionRepo.ListForDate(ctx, userID, date)
}

// GetDashboardStats composes the user's gamification state with today's
// completion count and the photo tally. The three reads are independent
// queries with no cross-query snapshot.
func (s *ProgressService) GetDashboardStats(ctx context.Context, userID int64) (*models.DashboardStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	todayCompletions, err := s.completionRepo.CountForDate(ctx, userID, Today())
	if err != nil {
		return nil, err
	}

	photoCount, lastPhoto, err := s.photoRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		CurrentStreak:       user.CurrentStreak,
		TotalXP:             user.TotalXP,
		Level:               user.Level,
		TodayCompletions:    todayCompletions,
		TotalProgressPhotos: photoCount,
		LastPhotoDate:       lastPhoto,
	}, nil
}
