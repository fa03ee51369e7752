package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lchou/hoopstats/models"
	"github.com/lchou/hoopstats/normalize"
	"github.com/lchou/hoopstats/repositories"
	"github.com/lchou/hoopstats/storage"
)

type PlayerService interface {
	Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Get(ctx context.Context, name string) (*models.Player, error)
	Update(ctx context.Context, name string, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, names []string) error
	UploadPhoto(ctx context.Context, name, contentType string, photo io.Reader) error
	Photo(ctx context.Context, name string) (io.ReadCloser, string, error)
}

type RegisterPlayerInput struct {
	Name     string `json:"name" validate:"required"`
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Age      string `json:"age" validate:"omitempty,number"`
	Height   string `json:"height" validate:"omitempty,number"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Weight   string `json:"weight" validate:"omitempty,number"`
}

func (in *RegisterPlayerInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// UpdatePlayerInput has no age field: age is always recomputed from the
// submitted birthday, never trusted as freeform input. The name is not
// updatable either, photo files are keyed by it.
type UpdatePlayerInput struct {
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Height   string `json:"height" validate:"omitempty,number"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Weight   string `json:"weight" validate:"omitempty,number"`
}

func (in *UpdatePlayerInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	photos     storage.PhotoStore
	now        func() time.Time
}

func NewPlayerService(playerRepo repositories.PlayerRepository, photos storage.PhotoStore) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		photos:     photos,
		now:        time.Now,
	}
}

func (s *playerService) Register(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	name, ok := normalize.PlayerName(input.Name)
	if !ok {
		return nil, ErrPlayerNameRequired
	}

	age := input.Age
	if input.Birthday != "" {
		// Birthday wins over a manually supplied age; the stored age is
		// only a fallback for players registered without one.
		age = ageFromBirthday(input.Birthday, s.now())
	}

	player := models.Player{
		Name:     name,
		Birthday: input.Birthday,
		Age:      age,
		Height:   input.Height,
		Gender:   models.Gender(input.Gender),
		Weight:   input.Weight,
	}
	if err := s.playerRepo.Create(ctx, &player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to register player %q: %w", name, err)
	}
	return &player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return players, nil
}

func (s *playerService) Get(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %q: %w", name, err)
	}
	return player, nil
}

func (s *playerService) Update(ctx context.Context, name string, input UpdatePlayerInput) (*models.Player, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	existing, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	updated := models.Player{
		Name:     existing.Name,
		Birthday: input.Birthday,
		Height:   input.Height,
		Gender:   models.Gender(input.Gender),
		Weight:   input.Weight,
	}
	if input.Birthday != "" {
		updated.Age = ageFromBirthday(input.Birthday, s.now())
	} else {
		updated.Age = existing.Age
	}

	if err := s.playerRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %q: %w", existing.Name, err)
	}
	return &updated, nil
}

// Delete removes roster rows and their photos. Game records referencing
// the deleted players are intentionally left in place: historical stats
// survive roster changes, and the record store tolerates orphaned names.
func (s *playerService) Delete(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return ErrNoPlayersSelected
	}
	if err := s.playerRepo.Delete(ctx, names); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	for _, name := range names {
		canonical, ok := normalize.PlayerName(name)
		if !ok {
			continue
		}
		if err := s.photos.Delete(ctx, photoKey(canonical)); err != nil {
			return fmt.Errorf("failed to delete photo for %q: %w", canonical, err)
		}
	}
	return nil
}

func (s *playerService) UploadPhoto(ctx context.Context, name, contentType string, photo io.Reader) error {
	player, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.photos.Put(ctx, photoKey(player.Name), contentType, photo); err != nil {
		return fmt.Errorf("failed to store photo for %q: %w", player.Name, err)
	}
	return nil
}

func (s *playerService) Photo(ctx context.Context, name string) (io.ReadCloser, string, error) {
	canonical, ok := normalize.PlayerName(name)
	if !ok {
		return nil, "", ErrPlayerNotFound
	}
	body, contentType, err := s.photos.Get(ctx, photoKey(canonical))
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("failed to load photo for %q: %w", canonical, err)
	}
	return body, contentType, nil
}

// photoKey derives the photo object key from the player's current name.
// Names are immutable after registration, so the key never goes stale.
func photoKey(name string) string {
	return name + ".jpg"
}

func ageFromBirthday(birthday string, today time.Time) string {
	birth, ok := normalize.Date(birthday)
	if !ok {
		return ""
	}
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age <= 0 {
		return ""
	}
	return strconv.Itoa(age)
}
