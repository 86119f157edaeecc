package repository

import (
	"testing"
	"time"

	"bloodbank-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestBloodUnitAvailability(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBloodUnitRepository()

	hospitalID := uuid.New()
	now := time.Now()
	expiry := now.AddDate(0, 0, 14)

	t.Run("aggregates per blood group", func(t *testing.T) {
		mock.ExpectQuery(`SELECT blood_group, SUM\(quantity\) AS total_quantity, COUNT\(\*\) AS units_count, MIN\(expiry_date\) AS earliest_expiry FROM "blood_units" WHERE hospital_id = \$1 AND status = \$2 AND expiry_date > \$3 GROUP BY`).
			WithArgs(hospitalID, string(entity.BloodUnitStatusAvailable), now).
			WillReturnRows(sqlmock.NewRows([]string{"blood_group", "total_quantity", "units_count", "earliest_expiry"}).
				AddRow("A+", 5, 3, expiry).
				AddRow("O-", 2, 2, expiry))

		rows, err := repo.Availability(db, hospitalID, "", now)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "A+", rows[0].BloodGroup)
		require.Equal(t, 5, rows[0].TotalQuantity)
		require.Equal(t, 3, rows[0].UnitsCount)
		require.Equal(t, "O-", rows[1].BloodGroup)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters on a single blood group", func(t *testing.T) {
		mock.ExpectQuery(`SELECT blood_group, SUM\(quantity\) AS total_quantity, COUNT\(\*\) AS units_count, MIN\(expiry_date\) AS earliest_expiry FROM "blood_units" WHERE \(hospital_id = \$1 AND status = \$2 AND expiry_date > \$3\) AND blood_group = \$4 GROUP BY`).
			WithArgs(hospitalID, string(entity.BloodUnitStatusAvailable), now, "O-").
			WillReturnRows(sqlmock.NewRows([]string{"blood_group", "total_quantity", "units_count", "earliest_expiry"}).
				AddRow("O-", 2, 2, expiry))

		rows, err := repo.Availability(db, hospitalID, "O-", now)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "O-", rows[0].BloodGroup)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBloodUnitReserve(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBloodUnitRepository()

	hospitalID := uuid.New()
	unitID := uuid.New()
	now := time.Now()

	t.Run("reserves an available unit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "blood_units" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND hospital_id = \$4 AND status = \$5 AND expiry_date > \$6`).
			WithArgs(string(entity.BloodUnitStatusReserved), sqlmock.AnyArg(), unitID, hospitalID, string(entity.BloodUnitStatusAvailable), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows, err := repo.Reserve(db, unitID, hospitalID, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), rows)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard rejects taken or expired units", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "blood_units" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND hospital_id = \$4 AND status = \$5 AND expiry_date > \$6`).
			WithArgs(string(entity.BloodUnitStatusReserved), sqlmock.AnyArg(), unitID, hospitalID, string(entity.BloodUnitStatusAvailable), now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows, err := repo.Reserve(db, unitID, hospitalID, now)
		require.NoError(t, err)
		require.Equal(t, int64(0), rows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBloodUnitFindByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBloodUnitRepository()

	hospitalID := uuid.New()
	unitID := uuid.New()

	t.Run("missing unit maps to nil without error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "blood_units" WHERE id = \$1 AND hospital_id = \$2`).
			WithArgs(unitID, hospitalID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		unit, err := repo.FindByID(db, unitID, hospitalID)
		require.NoError(t, err)
		require.Nil(t, unit)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found unit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "blood_units" WHERE id = \$1 AND hospital_id = \$2`).
			WithArgs(unitID, hospitalID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "hospital_id", "blood_group", "quantity", "status"}).
				AddRow(unitID, hospitalID, "B+", 1, "available"))

		unit, err := repo.FindByID(db, unitID, hospitalID)
		require.NoError(t, err)
		require.NotNil(t, unit)
		require.Equal(t, "B+", unit.BloodGroup)
		require.Equal(t, entity.BloodUnitStatusAvailable, unit.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
