package postgres

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const listAccountsQuery = "SELECT user_id, name, pin, balance FROM accounts ORDER BY user_id"

func TestAccountRepo_ListAccounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	rows := sqlmock.NewRows([]string{"user_id", "name", "pin", "balance"}).
		AddRow(int64(1), "John", "1234", "5000.00").
		AddRow(int64(2), "Alice", "5678", "2000.50")

	mock.ExpectQuery(listAccountsQuery).WillReturnRows(rows)

	accounts, err := repo.ListAccounts()

	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, int64(1), accounts[0].UserID)
	assert.Equal(t, "John", accounts[0].Name)
	assert.Equal(t, "1234", accounts[0].PIN)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, accounts[1].Balance.Equal(decimal.RequireFromString("2000.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_ListAccounts_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	mock.ExpectQuery(listAccountsQuery).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "pin", "balance"}))

	accounts, err := repo.ListAccounts()

	assert.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_ListAccounts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	mock.ExpectQuery(listAccountsQuery).WillReturnError(fmt.Errorf("query error"))

	accounts, err := repo.ListAccounts()

	assert.Error(t, err)
	assert.Nil(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepo_ListAccounts_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepo(db)

	// Balance that cannot be parsed as a decimal
	rows := sqlmock.NewRows([]string{"user_id", "name", "pin", "balance"}).
		AddRow(int64(1), "John", "1234", "lots")

	mock.ExpectQuery(listAccountsQuery).WillReturnRows(rows)

	accounts, err := repo.ListAccounts()

	assert.Error(t, err)
	assert.Nil(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
