package csvseed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"relay/internal/adapters/in/csvseed"
	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHandler[C any] struct {
	mock.Mock
}

func (m *MockHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

const (
	aliceID    = "0b3f7f0c-6a26-4c8e-9a55-1f4f4a1b0001"
	locationID = "0b3f7f0c-6a26-4c8e-9a55-1f4f4a1b0002"
	stayID     = "0b3f7f0c-6a26-4c8e-9a55-1f4f4a1b0003"
)

func newImporter() (*csvseed.Importer, *MockHandler[commands.CreateUserCommand],
	*MockHandler[commands.CreateLocationCommand], *MockHandler[commands.CreateStayCommand]) {
	users := &MockHandler[commands.CreateUserCommand]{}
	locations := &MockHandler[commands.CreateLocationCommand]{}
	stays := &MockHandler[commands.CreateStayCommand]{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return csvseed.NewImporter(users, locations, stays, logger), users, locations, stays
}

func TestImporter_Import(t *testing.T) {
	importer, users, locations, stays := newImporter()
	users.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateUserCommand) bool {
		return c.UserID().String() == aliceID && c.Username() == "alice" && c.Email() == "alice@example.org"
	})).Return(nil).Once()
	locations.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateLocationCommand) bool {
		return c.LocationID().String() == locationID && c.UserID().String() == aliceID && c.IsHome()
	})).Return(nil).Once()
	stays.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateStayCommand) bool {
		return c.StayID().String() == stayID &&
			c.Frequency() == stay.Once &&
			c.Start() != nil && c.Start().Equal(kernel.NewDate(2026, time.November, 2)) &&
			c.End() != nil && c.End().Equal(kernel.NewDate(2026, time.November, 4))
	})).Return(nil).Once()

	summary, err := importer.Import(context.Background(), csvseed.Sources{
		Users:     strings.NewReader("id,username,email\n" + aliceID + ",alice,alice@example.org\n"),
		Locations: strings.NewReader("id,user_id,name,lon,lat,is_home\n" + locationID + "," + aliceID + ",Home,13.40,52.52,true\n"),
		Stays: strings.NewReader("id,user_id,location_id,frequency,start,end\n" +
			stayID + "," + aliceID + "," + locationID + ",once,2026-11-02,2026-11-04\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, csvseed.Summary{Users: 1, Locations: 1, Stays: 1}, summary)
	users.AssertExpectations(t)
	locations.AssertExpectations(t)
	stays.AssertExpectations(t)
}

func TestImporter_EmptyDatesAreOptional(t *testing.T) {
	importer, _, _, stays := newImporter()
	stays.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.CreateStayCommand) bool {
		return c.Frequency() == stay.Weekly && c.Start() == nil && c.End() == nil
	})).Return(nil).Once()

	summary, err := importer.Import(context.Background(), csvseed.Sources{
		Stays: strings.NewReader("id,user_id,location_id,frequency,start,end\n" +
			stayID + "," + aliceID + "," + locationID + ",weekly,,\n"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stays)
	stays.AssertExpectations(t)
}

func TestImporter_SkipsMissingAndEmptyFiles(t *testing.T) {
	importer, users, _, _ := newImporter()

	summary, err := importer.Import(context.Background(), csvseed.Sources{
		Users: strings.NewReader(""),
	})

	require.NoError(t, err)
	assert.Equal(t, csvseed.Summary{}, summary)
	users.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestImporter_Errors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		importer, _, _, _ := newImporter()

		_, err := importer.Import(context.Background(), csvseed.Sources{
			Users: strings.NewReader("id,username,email\nnope,alice,alice@example.org\n"),
		})

		require.ErrorContains(t, err, "users row 1")
	})

	t.Run("unknown frequency", func(t *testing.T) {
		importer, _, _, _ := newImporter()

		_, err := importer.Import(context.Background(), csvseed.Sources{
			Stays: strings.NewReader("id,user_id,location_id,frequency,start,end\n" +
				stayID + "," + aliceID + "," + locationID + ",hourly,,\n"),
		})

		require.ErrorContains(t, err, "stays row 1")
	})

	t.Run("handler failure stops the import", func(t *testing.T) {
		importer, users, locations, _ := newImporter()
		users.On("Handle", mock.Anything, mock.Anything).Return(errors.New("duplicate")).Once()

		summary, err := importer.Import(context.Background(), csvseed.Sources{
			Users:     strings.NewReader("id,username,email\n" + aliceID + ",alice,alice@example.org\n"),
			Locations: strings.NewReader("id,user_id,name,lon,lat,is_home\n" + locationID + "," + aliceID + ",Home,13.40,52.52,true\n"),
		})

		require.ErrorContains(t, err, "duplicate")
		assert.Equal(t, 0, summary.Users)
		locations.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}
