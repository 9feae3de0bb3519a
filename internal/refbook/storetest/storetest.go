// Package storetest: общий набор тестов для реализаций refbook.Store и фикстура
// с двумя медицинскими справочниками.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"refbooks/internal/refbook"
)

// Fixture: id записей, созданных SeedFixture.
//
//	A (code "1"): 1.0 @2023-08-02 (пустая), 1.1 @2023-08-10 {1:Терапевт, 2:Травматолог, 3:Хирург}
//	B (code "2"): 1.0 @2023-08-11 {1:Заведующий}
type Fixture struct {
	A, B           refbook.Directory
	A10, A11, B10  refbook.Version
	Therapist      refbook.Element
	Traumatologist refbook.Element
	Surgeon        refbook.Element
	Head           refbook.Element
}

func date(s string) *refbook.Date {
	d := refbook.MustDate(s)
	return &d
}

// SeedFixture наполняет хранилище фикстурой.
func SeedFixture(t testing.TB, w refbook.Writer) Fixture {
	t.Helper()
	ctx := context.Background()
	var f Fixture

	f.A = refbook.Directory{Code: "1", Name: "Специальности медицинских работников"}
	require.NoError(t, w.CreateDirectory(ctx, &f.A))
	f.B = refbook.Directory{Code: "2", Name: "Должности медицинских работников"}
	require.NoError(t, w.CreateDirectory(ctx, &f.B))

	f.A10 = refbook.Version{DirectoryID: f.A.ID, Label: "1.0", StartDate: date("2023-08-02")}
	require.NoError(t, w.CreateVersion(ctx, &f.A10))
	f.A11 = refbook.Version{DirectoryID: f.A.ID, Label: "1.1", StartDate: date("2023-08-10")}
	require.NoError(t, w.CreateVersion(ctx, &f.A11))
	f.B10 = refbook.Version{DirectoryID: f.B.ID, Label: "1.0", StartDate: date("2023-08-11")}
	require.NoError(t, w.CreateVersion(ctx, &f.B10))

	f.Therapist = refbook.Element{VersionID: f.A11.ID, Code: "1", Value: "Терапевт"}
	require.NoError(t, w.CreateElement(ctx, &f.Therapist))
	f.Traumatologist = refbook.Element{VersionID: f.A11.ID, Code: "2", Value: "Травматолог"}
	require.NoError(t, w.CreateElement(ctx, &f.Traumatologist))
	f.Surgeon = refbook.Element{VersionID: f.A11.ID, Code: "3", Value: "Хирург"}
	require.NoError(t, w.CreateElement(ctx, &f.Surgeon))
	f.Head = refbook.Element{VersionID: f.B10.ID, Code: "1", Value: "Заведующий"}
	require.NoError(t, w.CreateElement(ctx, &f.Head))

	return f
}

// StoreSuite проверяет контракт refbook.Store. NewStore вызывается перед каждым тестом
// и должен вернуть пустое хранилище.
type StoreSuite struct {
	suite.Suite
	NewStore func(t *testing.T) refbook.Store

	store refbook.Store
	fx    Fixture
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore(s.T())
	s.fx = SeedFixture(s.T(), s.store)
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		s.NoError(s.store.Close())
	}
}

func (s *StoreSuite) requireConflict(err error, constraint string) {
	s.Require().Error(err)
	s.Require().ErrorIs(err, refbook.ErrConflict)
	var ce *refbook.ConflictError
	s.Require().ErrorAs(err, &ce)
	s.Equal(constraint, ce.Constraint)
}

func (s *StoreSuite) TestDirectoryCodeUnique() {
	ok := refbook.Directory{Code: "3", Name: "Специальности медицинских работников"}
	s.Require().NoError(s.store.CreateDirectory(s.ctx, &ok))
	s.NotZero(ok.ID)

	dup := refbook.Directory{Code: "1", Name: "Специальности медицинских работников"}
	s.requireConflict(s.store.CreateDirectory(s.ctx, &dup), refbook.ConstraintDirectoryCode)
}

func (s *StoreSuite) TestVersionLabelUnique() {
	ok := refbook.Version{DirectoryID: s.fx.A.ID, Label: "2.0", StartDate: date("2023-08-11")}
	s.Require().NoError(s.store.CreateVersion(s.ctx, &ok))

	dup := refbook.Version{DirectoryID: s.fx.A.ID, Label: "1.0", StartDate: date("2023-08-12")}
	s.requireConflict(s.store.CreateVersion(s.ctx, &dup), refbook.ConstraintVersionLabel)

	// та же метка в другом справочнике допустима
	other := refbook.Version{DirectoryID: s.fx.B.ID, Label: "1.1", StartDate: date("2023-08-12")}
	s.NoError(s.store.CreateVersion(s.ctx, &other))
}

func (s *StoreSuite) TestVersionStartDateUnique() {
	dup := refbook.Version{DirectoryID: s.fx.A.ID, Label: "2.0", StartDate: date("2023-08-10")}
	s.requireConflict(s.store.CreateVersion(s.ctx, &dup), refbook.ConstraintVersionStartDate)

	other := refbook.Version{DirectoryID: s.fx.B.ID, Label: "2.0", StartDate: date("2023-08-10")}
	s.NoError(s.store.CreateVersion(s.ctx, &other))
}

func (s *StoreSuite) TestNullStartDatesDoNotConflict() {
	v1 := refbook.Version{DirectoryID: s.fx.B.ID, Label: "draft-1"}
	v2 := refbook.Version{DirectoryID: s.fx.B.ID, Label: "draft-2"}
	s.Require().NoError(s.store.CreateVersion(s.ctx, &v1))
	s.Require().NoError(s.store.CreateVersion(s.ctx, &v2))

	got, err := s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.B.ID})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	// NULL-даты в начале
	s.Nil(got[0].StartDate)
	s.Nil(got[1].StartDate)
	s.Equal(s.fx.B10.ID, got[2].ID)
}

func (s *StoreSuite) TestElementCodeUnique() {
	ok := refbook.Element{VersionID: s.fx.A10.ID, Code: "4", Value: "Травматолог"}
	s.Require().NoError(s.store.CreateElement(s.ctx, &ok))

	dup := refbook.Element{VersionID: s.fx.A11.ID, Code: "2", Value: "Травматолог"}
	s.requireConflict(s.store.CreateElement(s.ctx, &dup), refbook.ConstraintElementCode)
}

func (s *StoreSuite) TestListDirectories() {
	all, err := s.store.ListDirectories(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal([]refbook.Directory{s.fx.A, s.fx.B}, all)

	// у A подходят две версии, но A в выдаче один раз
	got, err := s.store.ListDirectories(s.ctx, date("2023-08-10"))
	s.Require().NoError(err)
	s.Equal([]refbook.Directory{s.fx.A}, got)

	got, err = s.store.ListDirectories(s.ctx, date("2023-08-11"))
	s.Require().NoError(err)
	s.Equal([]refbook.Directory{s.fx.A, s.fx.B}, got)

	got, err = s.store.ListDirectories(s.ctx, date("2023-08-01"))
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreSuite) TestGetDirectory() {
	got, err := s.store.GetDirectory(s.ctx, s.fx.B.ID)
	s.Require().NoError(err)
	s.Equal(s.fx.B, got)

	_, err = s.store.GetDirectory(s.ctx, s.fx.B.ID+1000)
	s.ErrorIs(err, refbook.ErrNotFound)
}

func (s *StoreSuite) TestDescriptionRoundTrip() {
	desc := "Номенклатура специальностей"
	d := refbook.Directory{Code: "N", Name: "Номенклатура", Description: &desc}
	s.Require().NoError(s.store.CreateDirectory(s.ctx, &d))

	got, err := s.store.GetDirectory(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Description)
	s.Equal(desc, *got.Description)
	s.Nil(s.fx.A.Description)
}

func (s *StoreSuite) TestListVersions() {
	got, err := s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID})
	s.Require().NoError(err)
	s.Equal([]refbook.Version{s.fx.A10, s.fx.A11}, got)

	got, err = s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID, Label: "1.1"})
	s.Require().NoError(err)
	s.Equal([]refbook.Version{s.fx.A11}, got)

	got, err = s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID, StartedBy: date("2023-08-09")})
	s.Require().NoError(err)
	s.Equal([]refbook.Version{s.fx.A10}, got)

	got, err = s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID, Label: "2.0"})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreSuite) TestListElements() {
	got, err := s.store.ListElements(s.ctx, refbook.ElementFilter{VersionID: s.fx.A11.ID})
	s.Require().NoError(err)
	s.Equal([]refbook.Element{s.fx.Therapist, s.fx.Traumatologist, s.fx.Surgeon}, got)

	got, err = s.store.ListElements(s.ctx, refbook.ElementFilter{Code: "1"})
	s.Require().NoError(err)
	s.Equal([]refbook.Element{s.fx.Therapist, s.fx.Head}, got)

	got, err = s.store.ListElements(s.ctx, refbook.ElementFilter{VersionID: s.fx.A11.ID, Code: "1", Value: "Хирург"})
	s.Require().NoError(err)
	s.Empty(got)

	got, err = s.store.ListElements(s.ctx, refbook.ElementFilter{})
	s.Require().NoError(err)
	s.Len(got, 4)
}

func (s *StoreSuite) TestDeleteDirectoryCascades() {
	s.Require().NoError(s.store.DeleteDirectory(s.ctx, s.fx.A.ID))

	_, err := s.store.GetDirectory(s.ctx, s.fx.A.ID)
	s.ErrorIs(err, refbook.ErrNotFound)

	versions, err := s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID})
	s.Require().NoError(err)
	s.Empty(versions)

	elems, err := s.store.ListElements(s.ctx, refbook.ElementFilter{})
	s.Require().NoError(err)
	s.Equal([]refbook.Element{s.fx.Head}, elems)

	// код освободился
	again := refbook.Directory{Code: "1", Name: "Специальности"}
	s.NoError(s.store.CreateDirectory(s.ctx, &again))
}

func (s *StoreSuite) TestDeleteVersionCascades() {
	s.Require().NoError(s.store.DeleteVersion(s.ctx, s.fx.A11.ID))

	elems, err := s.store.ListElements(s.ctx, refbook.ElementFilter{VersionID: s.fx.A11.ID})
	s.Require().NoError(err)
	s.Empty(elems)

	versions, err := s.store.ListVersions(s.ctx, refbook.VersionFilter{DirectoryID: s.fx.A.ID})
	s.Require().NoError(err)
	s.Equal([]refbook.Version{s.fx.A10}, versions)
}

func (s *StoreSuite) TestDeleteMissing() {
	s.ErrorIs(s.store.DeleteDirectory(s.ctx, 9999), refbook.ErrNotFound)
	s.ErrorIs(s.store.DeleteVersion(s.ctx, 9999), refbook.ErrNotFound)
}

func (s *StoreSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}
