package sqlrepo

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizcardx/internal/config"
	"bizcardx/internal/domain"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := NewDB(&config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ddl, err := os.ReadFile("../../../db/migrations/sqlite/000001_create_business_cards.up.sql")
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(ddl), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func sampleCard(name, company string) *domain.BusinessCard {
	return &domain.BusinessCard{
		CompanyName:      company,
		Name:             name,
		Designation:      "Data Manager",
		PhoneNumber:      "+123-456-7890",
		Email:            "hello@example.com",
		Website:          "www.example.com",
		Address:          "123 ABC St, Chennai",
		State:            "TamilNadu",
		Pincode:          "600113",
		Image:            []byte{0x89, 'P', 'N', 'G'},
		ImageContentType: "image/png",
	}
}

func TestCardRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	card := sampleCard("Selva", "Selva Digitals")
	require.NoError(t, repo.Create(ctx, card))
	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.False(t, card.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, card.Fields(), got.Fields())
	assert.Equal(t, card.Image, got.Image)
	assert.Equal(t, "image/png", got.ImageContentType)
	assert.WithinDuration(t, card.CreatedAt, got.CreatedAt, time.Second)
}

func TestRecordColumns(t *testing.T) {
	assert.Equal(t, []string{
		"company_name", "name", "designation", "phone_number", "email",
		"website", "address", "state", "pincode", "image",
	}, recordColumns)
}

func TestCardRepo_Create_EmptyFieldsAndNilImage(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	card := &domain.BusinessCard{Name: "Only Name"}
	require.NoError(t, repo.Create(ctx, card))

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Fields(), got.Fields())
	assert.Empty(t, got.Image)
}

func TestCardRepo_GetByID_NotFound(t *testing.T) {
	repo := NewCardRepo(newTestDB(t))
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestCardRepo_GetByName_MostRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	older := sampleCard("Amit", "Old Co")
	require.NoError(t, repo.Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := sampleCard("Amit", "New Co")
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByName(ctx, "Amit")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	_, err = repo.GetByName(ctx, "Nobody")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestCardRepo_ListFiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	for _, c := range []*domain.BusinessCard{
		sampleCard("Selva", "Selva Digitals"),
		sampleCard("Karthi", "Global Insurance"),
		sampleCard("Revanth", "Family Restaurant"),
		sampleCard("Sarah", "Global Insurance"),
	} {
		require.NoError(t, repo.Create(ctx, c))
		time.Sleep(2 * time.Millisecond)
	}

	all, total, err := repo.List(ctx, domain.CardFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, all, 4)
	assert.Equal(t, "Sarah", all[0].Name)
	assert.Nil(t, all[0].Image)

	page, total, err := repo.List(ctx, domain.CardFilter{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Revanth", page[0].Name)

	global, total, err := repo.List(ctx, domain.CardFilter{Company: "global"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, global, 2)

	byName, _, err := repo.List(ctx, domain.CardFilter{Name: "SEL", Company: "digital"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Selva", byName[0].Name)

	none, total, err := repo.List(ctx, domain.CardFilter{Name: "zzz"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, none)
}

func TestCardRepo_ListNames(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	for _, n := range []string{"Selva", "Amit", "Selva", ""} {
		require.NoError(t, repo.Create(ctx, sampleCard(n, "Co")))
	}
	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amit", "Selva"}, names)
}

func TestCardRepo_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	card := sampleCard("Selva", "Selva Digitals")
	require.NoError(t, repo.Create(ctx, card))

	card.Designation = "Ceo & Founder"
	card.Pincode = "600001"
	card.Image = nil
	require.NoError(t, repo.Update(ctx, card))

	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ceo & Founder", got.Designation)
	assert.Equal(t, "600001", got.Pincode)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got.Image, "update leaves the image untouched")

	missing := sampleCard("Ghost", "None")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrCardNotFound)
}

func TestCardRepo_ImageAndKey(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	card := sampleCard("Selva", "Selva Digitals")
	require.NoError(t, repo.Create(ctx, card))

	img, ct, err := repo.GetImage(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Image, img)
	assert.Equal(t, "image/png", ct)

	require.NoError(t, repo.SetImageKey(ctx, card.ID, "cards/x/original.png"))
	got, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "cards/x/original.png", got.ImageKey)

	_, _, err = repo.GetImage(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	assert.ErrorIs(t, repo.SetImageKey(ctx, uuid.New(), "k"), domain.ErrCardNotFound)
}

func TestCardRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewCardRepo(newTestDB(t))

	card := sampleCard("Selva", "Selva Digitals")
	require.NoError(t, repo.Create(ctx, card))
	require.NoError(t, repo.Delete(ctx, card.ID))

	_, err := repo.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, card.ID), domain.ErrCardNotFound)
}

func TestCardRepo_Ping(t *testing.T) {
	assert.NoError(t, NewCardRepo(newTestDB(t)).Ping(context.Background()))
}
