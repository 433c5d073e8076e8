// Package repositorytest holds the behavior every repository.UserRepository
// backend must share. Backend packages run it from their own tests.
package repositorytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

// Factory returns an empty repository for a single test.
type Factory func(t *testing.T) repository.UserRepository

// ContractSuite exercises the repository.UserRepository contract.
type ContractSuite struct {
	suite.Suite
	newRepo Factory
	repo    repository.UserRepository
}

// Run executes the contract suite against repositories built by factory.
func Run(t *testing.T, factory Factory) {
	t.Helper()
	suite.Run(t, &ContractSuite{newRepo: factory})
}

// MustUser builds a valid user or fails the test.
func MustUser(t testing.TB, username, lastName, dni string) domain.User {
	t.Helper()
	user, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		t.Fatalf("build user: %v", err)
	}
	return user
}

func (s *ContractSuite) SetupTest() {
	s.repo = s.newRepo(s.T())
}

func (s *ContractSuite) TearDownTest() {
	s.Require().NoError(s.repo.Close())
}

func (s *ContractSuite) TestSaveAndGet() {
	ctx := context.Background()

	s.Run("round trips every field", func() {
		user := MustUser(s.T(), "Ana", "García", "12345678Z")

		saved, err := s.repo.Save(ctx, user)
		s.Require().NoError(err)
		s.Equal(user, saved)

		found, ok, err := s.repo.Get(ctx, "12345678Z")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("Ana", found.Username())
		s.Equal("García", found.LastName())
		s.Equal("12345678Z", found.DNI())
	})

	s.Run("reports absence without error", func() {
		found, ok, err := s.repo.Get(ctx, "99999999R")
		s.Require().NoError(err)
		s.False(ok)
		s.True(found.IsZero())
	})

	s.Run("overwrites an existing dni", func() {
		_, err := s.repo.Save(ctx, MustUser(s.T(), "Carlos", "Ruiz", "87654321X"))
		s.Require().NoError(err)
		_, err = s.repo.Save(ctx, MustUser(s.T(), "Carla", "Ruiz", "87654321X"))
		s.Require().NoError(err)

		found, ok, err := s.repo.Get(ctx, "87654321X")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("Carla", found.Username())
	})

	s.Run("rejects a user not built by NewUser", func() {
		before, err := s.repo.List(ctx)
		s.Require().NoError(err)

		_, err = s.repo.Save(ctx, domain.User{})
		var verr *domain.ValidationError
		s.Require().ErrorAs(err, &verr)
		s.Equal(domain.FieldUsername, verr.Field)

		_, ok, err := s.repo.Get(ctx, "")
		s.Require().NoError(err)
		s.False(ok)

		after, err := s.repo.List(ctx)
		s.Require().NoError(err)
		s.ElementsMatch(before, after)
	})
}

func (s *ContractSuite) TestUpdate() {
	ctx := context.Background()

	s.Run("unknown dni is absent", func() {
		updated, ok, err := s.repo.Update(ctx, "00000000T", "Nobody", "Here")
		s.Require().NoError(err)
		s.False(ok)
		s.True(updated.IsZero())
	})

	s.Run("replaces names and keeps dni", func() {
		_, err := s.repo.Save(ctx, MustUser(s.T(), "Agustín", "Estévez Domínguez", "76826889N"))
		s.Require().NoError(err)

		updated, ok, err := s.repo.Update(ctx, "76826889N", "Agustin", "Estevez D.")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("Agustin", updated.Username())
		s.Equal("Estevez D.", updated.LastName())
		s.Equal("76826889N", updated.DNI())

		found, ok, err := s.repo.Get(ctx, "76826889N")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal(updated, found)
	})

	s.Run("rejects empty names and keeps the record", func() {
		_, err := s.repo.Save(ctx, MustUser(s.T(), "María", "López", "12345678Z"))
		s.Require().NoError(err)

		_, _, err = s.repo.Update(ctx, "12345678Z", "", "López")
		s.Require().ErrorIs(err, domain.ErrInvalidUser)

		found, ok, err := s.repo.Get(ctx, "12345678Z")
		s.Require().NoError(err)
		s.Require().True(ok)
		s.Equal("María", found.Username())
	})
}

func (s *ContractSuite) TestDelete() {
	ctx := context.Background()

	s.Run("removes a present record", func() {
		_, err := s.repo.Save(ctx, MustUser(s.T(), "Alice", "Smith", "12345678Z"))
		s.Require().NoError(err)

		s.Require().NoError(s.repo.Delete(ctx, "12345678Z"))

		_, ok, err := s.repo.Get(ctx, "12345678Z")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("is a no-op for an absent record", func() {
		s.Require().NoError(s.repo.Delete(ctx, "00000000T"))
	})
}

func (s *ContractSuite) TestList() {
	ctx := context.Background()

	empty, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)

	first := MustUser(s.T(), "Alice", "Smith", "12345678Z")
	second := MustUser(s.T(), "Juan", "Pérez Gómez", "87654321X")
	_, err = s.repo.Save(ctx, first)
	s.Require().NoError(err)
	_, err = s.repo.Save(ctx, second)
	s.Require().NoError(err)

	users, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]domain.User{first, second}, users)
}
