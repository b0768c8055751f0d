package model

import "time"

// Theater represents a theater venue managed through the API.
// A theater optionally references one user as its manager via a
// weak, nullable reference: deleting the manager does not delete
// the theater. This struct corresponds to a row in the `theaters`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – venue name, at most 120 characters, never blank.
//  Address   – street address, never blank.
//  SeatCount – total seats, strictly positive.
//  ManagerID – user ID of the assigned manager (nil when unassigned).
//  CreatedAt – timestamp when the row was created.
//  UpdatedAt – timestamp of last update.
type Theater struct {
    ID        uint64    // theaters.id
    Name      string    // theaters.name
    Address   string    // theaters.address
    SeatCount uint32    // theaters.seat_count
    ManagerID *uint64   // theaters.manager_id (nullable)
    CreatedAt time.Time // theaters.created_at
    UpdatedAt time.Time // theaters.updated_at
}

// TheaterNameMaxLen is the upper bound on theater name length,
// matching the VARCHAR(120) column.
const TheaterNameMaxLen = 120
