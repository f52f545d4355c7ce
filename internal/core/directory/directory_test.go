package directory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskstack/riskstack/internal/core/directory"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/testutil"
)

type stubSource struct {
	name        string
	suggestions []directory.Suggestion
	err         error
	queried     int
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) Search(term string, limit int) ([]directory.Suggestion, error) {
	s.queried++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.suggestions) > limit {
		return s.suggestions[:limit], nil
	}
	return s.suggestions, nil
}

func suggestion(username, source string) directory.Suggestion {
	return directory.Suggestion{
		Username:    username,
		DisplayName: username,
		Source:      source,
	}
}

func TestSearchUsersBlankTermSkipsBackends(t *testing.T) {
	source := &stubSource{name: "stub", suggestions: []directory.Suggestion{suggestion("alice", "stub")}}
	service := directory.NewService(source)

	assert.Empty(t, service.SearchUsers("", 10))
	assert.Empty(t, service.SearchUsers("   ", 10))
	assert.Zero(t, source.queried)
}

func TestSearchUsersClampsLimit(t *testing.T) {
	suggestions := make([]directory.Suggestion, 0, 40)
	for i := 0; i < 40; i++ {
		suggestions = append(suggestions, suggestion(fmt.Sprintf("user-%02d", i), "stub"))
	}
	service := directory.NewService(&stubSource{name: "stub", suggestions: suggestions})

	assert.Len(t, service.SearchUsers("te", 100), 25)
	assert.Len(t, service.SearchUsers("te", 0), 1)
	assert.Len(t, service.SearchUsers("te", -5), 1)
}

func TestSearchUsersDeduplicatesAcrossSources(t *testing.T) {
	first := &stubSource{name: "first", suggestions: []directory.Suggestion{
		suggestion("alice", "first"),
		suggestion("bob", "first"),
	}}
	second := &stubSource{name: "second", suggestions: []directory.Suggestion{
		suggestion("bob", "second"),
		suggestion("carol", "second"),
	}}
	service := directory.NewService(first, second)

	results := service.SearchUsers("b", 10)
	require.Len(t, results, 3)
	assert.Equal(t, "alice", results[0].Username)
	assert.Equal(t, "bob", results[1].Username)
	assert.Equal(t, "first", results[1].Source)
	assert.Equal(t, "carol", results[2].Username)
}

func TestSearchUsersStopsOnceLimitReached(t *testing.T) {
	first := &stubSource{name: "first", suggestions: []directory.Suggestion{
		suggestion("alice", "first"),
		suggestion("bob", "first"),
	}}
	second := &stubSource{name: "second", suggestions: []directory.Suggestion{
		suggestion("carol", "second"),
	}}
	service := directory.NewService(first, second)

	results := service.SearchUsers("a", 2)
	assert.Len(t, results, 2)
	assert.Zero(t, second.queried)
}

func TestSearchUsersSkipsFailingSources(t *testing.T) {
	failing := &stubSource{name: "failing", err: fmt.Errorf("backend unavailable")}
	healthy := &stubSource{name: "healthy", suggestions: []directory.Suggestion{suggestion("alice", "healthy")}}
	service := directory.NewService(failing, healthy)

	results := service.SearchUsers("al", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].Username)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace (ada)", directory.DisplayName("Ada Lovelace", "ada"))
	assert.Equal(t, "ada", directory.DisplayName("", "ada"))
	assert.Equal(t, "ada", directory.DisplayName("   ", "ada"))
	assert.Equal(t, "ada", directory.DisplayName("ada", "ada"))
}

func TestDatabaseSourceMatchesCaseInsensitively(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	userRepository := repositories.NewUserRepository(db)

	users := []models.User{
		{Username: "ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{Username: "grace", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		{Username: "linus", FirstName: "", LastName: "", Email: "linus@example.com"},
	}
	for i := range users {
		require.NoError(t, userRepository.Create(nil, &users[i]))
	}

	source := directory.NewDatabaseSource(userRepository)

	results, err := source.Search("LOVE", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ada", results[0].Username)
	assert.Equal(t, "Ada Lovelace (ada)", results[0].DisplayName)

	results, err = source.Search("example.com", 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = source.Search("linus", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "linus", results[0].DisplayName)
}
