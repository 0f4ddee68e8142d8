// Package csvseed loads users, their locations and their stays from CSV
// exports and replays them through the regular create commands.
//
// Each file starts with a header row:
//
//	users.csv:     id,username,email
//	locations.csv: id,user_id,name,lon,lat,is_home
//	stays.csv:     id,user_id,location_id,frequency,start,end
//
// Dates use YYYY-MM-DD; start and end may be empty.
package csvseed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"

	"github.com/jszwec/csvutil"
)

type UserRow struct {
	ID       string `csv:"id"`
	Username string `csv:"username"`
	Email    string `csv:"email"`
}

type LocationRow struct {
	ID     string  `csv:"id"`
	UserID string  `csv:"user_id"`
	Name   string  `csv:"name"`
	Lon    float64 `csv:"lon"`
	Lat    float64 `csv:"lat"`
	IsHome bool    `csv:"is_home,omitempty"`
}

type StayRow struct {
	ID         string       `csv:"id"`
	UserID     string       `csv:"user_id"`
	LocationID string       `csv:"location_id"`
	Frequency  string       `csv:"frequency"`
	Start      *kernel.Date `csv:"start,omitempty"`
	End        *kernel.Date `csv:"end,omitempty"`
}

type commandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Sources are the three CSV streams. A nil reader skips that file.
type Sources struct {
	Users     io.Reader
	Locations io.Reader
	Stays     io.Reader
}

// Summary counts imported rows per file.
type Summary struct {
	Users     int
	Locations int
	Stays     int
}

type Importer struct {
	createUser     commandHandler[commands.CreateUserCommand]
	createLocation commandHandler[commands.CreateLocationCommand]
	createStay     commandHandler[commands.CreateStayCommand]
	logger         *slog.Logger
}

func NewImporter(
	createUser commandHandler[commands.CreateUserCommand],
	createLocation commandHandler[commands.CreateLocationCommand],
	createStay commandHandler[commands.CreateStayCommand],
	logger *slog.Logger,
) *Importer {
	return &Importer{
		createUser:     createUser,
		createLocation: createLocation,
		createStay:     createStay,
		logger:         logger.With("component", "csvseed"),
	}
}

// Import decodes and stores users, then locations, then stays. It stops at
// the first failing row; rows stored before it are kept.
func (i *Importer) Import(ctx context.Context, src Sources) (Summary, error) {
	var summary Summary

	users, err := decodeAll[UserRow](src.Users, "users")
	if err != nil {
		return summary, err
	}
	for n, row := range users {
		if err = i.importUser(ctx, row); err != nil {
			return summary, fmt.Errorf("users row %d: %w", n+1, err)
		}
		summary.Users++
	}

	locations, err := decodeAll[LocationRow](src.Locations, "locations")
	if err != nil {
		return summary, err
	}
	for n, row := range locations {
		if err = i.importLocation(ctx, row); err != nil {
			return summary, fmt.Errorf("locations row %d: %w", n+1, err)
		}
		summary.Locations++
	}

	stays, err := decodeAll[StayRow](src.Stays, "stays")
	if err != nil {
		return summary, err
	}
	for n, row := range stays {
		if err = i.importStay(ctx, row); err != nil {
			return summary, fmt.Errorf("stays row %d: %w", n+1, err)
		}
		summary.Stays++
	}

	i.logger.Info("seed import finished",
		"users", summary.Users,
		"locations", summary.Locations,
		"stays", summary.Stays,
	)
	return summary, nil
}

func decodeAll[T any](r io.Reader, name string) ([]T, error) {
	if r == nil {
		return nil, nil
	}
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s csv header: %w", name, err)
	}

	var rows []T
	if err = dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s csv: %w", name, err)
	}
	return rows, nil
}

func (i *Importer) importUser(ctx context.Context, row UserRow) error {
	id, err := kernel.UUIDFromString(row.ID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateUserCommand(id, row.Username, row.Email)
	if err != nil {
		return err
	}
	return i.createUser.Handle(ctx, cmd)
}

func (i *Importer) importLocation(ctx context.Context, row LocationRow) error {
	id, err := kernel.UUIDFromString(row.ID)
	if err != nil {
		return err
	}
	userID, err := kernel.UUIDFromString(row.UserID)
	if err != nil {
		return err
	}
	point, err := kernel.NewGeoPoint(row.Lon, row.Lat)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateLocationCommand(id, userID, row.Name, point, row.IsHome)
	if err != nil {
		return err
	}
	return i.createLocation.Handle(ctx, cmd)
}

func (i *Importer) importStay(ctx context.Context, row StayRow) error {
	id, err := kernel.UUIDFromString(row.ID)
	if err != nil {
		return err
	}
	userID, err := kernel.UUIDFromString(row.UserID)
	if err != nil {
		return err
	}
	locationID, err := kernel.UUIDFromString(row.LocationID)
	if err != nil {
		return err
	}
	freq, err := stay.ParseFrequency(row.Frequency)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateStayCommand(id, userID, locationID, freq, row.Start, row.End)
	if err != nil {
		return err
	}
	return i.createStay.Handle(ctx, cmd)
}
