package repositories

import (
	stderrors "errors"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"gorm.io/gorm"
)

// Store bundles the per-entity repositories behind one value so it can be
// handed to the services as their entity store.
type Store struct {
	*UserRepository
	*SkillRepository
	*SwapRequestRepository
	*MatchRepository
	*MessageRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		UserRepository:        NewUserRepository(db),
		SkillRepository:       NewSkillRepository(db),
		SwapRequestRepository: NewSwapRequestRepository(db),
		MatchRepository:       NewMatchRepository(db),
		MessageRepository:     NewMessageRepository(db),
	}
}

// translate maps driver errors onto the application error codes.
func translate(err error, notFoundMsg, failMsg string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.New(errors.ErrCodeNotFound, notFoundMsg)
	case stderrors.Is(err, gorm.ErrInvalidData):
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid record")
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(err, errors.ErrCodeInvalidState, "conflicting record already exists")
	default:
		return errors.Wrap(err, errors.ErrCodeTransientStore, failMsg)
	}
}
