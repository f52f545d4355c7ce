package directory

import (
	"github.com/riskstack/riskstack/internal/database/models"
)

type userSearchRepository interface {
	SearchByTerm(term string, limit int) ([]models.User, error)
}

// databaseSource suggests owners from the local identity store.
type databaseSource struct {
	userRepository userSearchRepository
}

func NewDatabaseSource(userRepository userSearchRepository) *databaseSource {
	return &databaseSource{
		userRepository: userRepository,
	}
}

func (s *databaseSource) Name() string {
	return "database"
}

func (s *databaseSource) Search(term string, limit int) ([]Suggestion, error) {
	users, err := s.userRepository.SearchByTerm(term, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(users))
	for _, user := range users {
		suggestions = append(suggestions, Suggestion{
			Username:    user.Username,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Email:       user.Email,
			DisplayName: DisplayName(user.FullName(), user.Username),
			Source:      s.Name(),
		})
	}
	return suggestions, nil
}
