package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func violationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %v", err)
	require.True(t, errors.Is(err, ErrValidation))
	out := make(map[string]string, len(ve.Violations))
	for _, v := range ve.Violations {
		out[v.Field] = v.Message
	}
	return out
}

func TestNewSweet_Valid(t *testing.T) {
	s, err := NewSweet(SweetDraft{
		Name:        "  Chocolate Bar  ",
		Category:    CategoryChocolate,
		Price:       ptr(2.99),
		Quantity:    ptr(100),
		Description: " Delicious milk chocolate bar ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Bar", s.Name)
	assert.Equal(t, "Delicious milk chocolate bar", s.Description)
	assert.Equal(t, 2.99, s.Price)
	assert.Equal(t, 100, s.Quantity)
}

func TestNewSweet_DefaultsQuantityToZero(t *testing.T) {
	s, err := NewSweet(SweetDraft{Name: "Test Sweet", Category: CategoryCandy, Price: ptr(5.0)})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
}

func TestNewSweet_AcceptsZeroPrice(t *testing.T) {
	_, err := NewSweet(SweetDraft{Name: "Free Sample", Category: CategoryOther, Price: ptr(0.0)})
	require.NoError(t, err)
}

func TestNewSweet_MissingRequiredFields(t *testing.T) {
	_, err := NewSweet(SweetDraft{Name: "Test Sweet"})
	fields := violationFields(t, err)
	assert.Equal(t, "Please provide a category", fields["category"])
	assert.Equal(t, "Please provide a price", fields["price"])
	assert.NotContains(t, fields, "quantity")
}

func TestNewSweet_BlankNameIsMissing(t *testing.T) {
	_, err := NewSweet(SweetDraft{Name: "   ", Category: CategoryCandy, Price: ptr(1.0)})
	fields := violationFields(t, err)
	assert.Equal(t, "Please provide a sweet name", fields["name"])
}

func TestNewSweet_RejectsNegativeValues(t *testing.T) {
	_, err := NewSweet(SweetDraft{Name: "Test", Category: CategoryCandy, Price: ptr(-5.0), Quantity: ptr(-10)})
	fields := violationFields(t, err)
	assert.Equal(t, "Price cannot be negative", fields["price"])
	assert.Equal(t, "Quantity cannot be negative", fields["quantity"])
}

func TestNewSweet_RejectsUnknownCategory(t *testing.T) {
	_, err := NewSweet(SweetDraft{Name: "Test", Category: "Invalid Category", Price: ptr(1.0)})
	fields := violationFields(t, err)
	assert.Equal(t, "Invalid Category is not a valid category", fields["category"])
}

func TestNewSweet_AcceptsEveryCategory(t *testing.T) {
	for _, c := range Categories {
		_, err := NewSweet(SweetDraft{Name: "Test", Category: c, Price: ptr(1.0)})
		assert.NoError(t, err, "category %q", c)
	}
}

func TestApplyPatch_MergesAndKeepsIdentity(t *testing.T) {
	base := Sweet{ID: "abc", Name: "Lolly", Category: CategoryLollipop, Price: 1, Quantity: 10}

	merged, err := ApplyPatch(base, SweetPatch{Price: ptr(1.5), Name: ptr(" Big Lolly ")})
	require.NoError(t, err)
	assert.Equal(t, "abc", merged.ID)
	assert.Equal(t, "Big Lolly", merged.Name)
	assert.Equal(t, 1.5, merged.Price)
	assert.Equal(t, 10, merged.Quantity)
	assert.Equal(t, CategoryLollipop, merged.Category)
}

func TestApplyPatch_RejectsInvalidMerge(t *testing.T) {
	base := Sweet{ID: "abc", Name: "Lolly", Category: CategoryLollipop, Price: 1, Quantity: 10}

	_, err := ApplyPatch(base, SweetPatch{Quantity: ptr(-1)})
	assert.Contains(t, violationFields(t, err), "quantity")

	bad := Category("Cake")
	_, err = ApplyPatch(base, SweetPatch{Category: &bad})
	assert.Contains(t, violationFields(t, err), "category")
}

func TestSweetPatch_Narrow(t *testing.T) {
	base := Sweet{ID: "abc", Name: "Lolly", Category: CategoryLollipop, Price: 1, Quantity: 10}
	patch := SweetPatch{Name: ptr("  Big Lolly ")}

	merged, err := ApplyPatch(base, patch)
	require.NoError(t, err)

	narrow := patch.Narrow(merged)
	require.NotNil(t, narrow.Name)
	assert.Equal(t, "Big Lolly", *narrow.Name)
	assert.Nil(t, narrow.Category)
	assert.Nil(t, narrow.Price)
	assert.Nil(t, narrow.Quantity)
	assert.Nil(t, narrow.Description)
}

func TestValidateRegistration(t *testing.T) {
	r, err := ValidateRegistration(Registration{Name: " Test User ", Email: "test@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r.Role)
	assert.Equal(t, "Test User", r.Name)

	r, err = ValidateRegistration(Registration{Name: "Admin", Email: "admin@example.com", Password: "password123", Role: RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r.Role)
}

func TestValidateRegistration_Violations(t *testing.T) {
	_, err := ValidateRegistration(Registration{Email: "test@example.com"})
	fields := violationFields(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")

	_, err = ValidateRegistration(Registration{Name: "x", Email: "invalid-email", Password: "password123"})
	assert.Equal(t, "Please provide a valid email", violationFields(t, err)["email"])

	_, err = ValidateRegistration(Registration{Name: "x", Email: "x@example.com", Password: "password123", Role: "root"})
	assert.Equal(t, "root is not a valid role", violationFields(t, err)["role"])
}

func TestSweetFilter_Matches(t *testing.T) {
	s := Sweet{Name: "Dark Chocolate Truffle", Category: CategoryChocolate, Price: 3.5}

	cases := []struct {
		name   string
		filter SweetFilter
		want   bool
	}{
		{"empty", SweetFilter{}, true},
		{"name substring any case", SweetFilter{Name: "chocolate"}, true},
		{"name miss", SweetFilter{Name: "gummy"}, false},
		{"category exact", SweetFilter{Category: CategoryChocolate}, true},
		{"category miss", SweetFilter{Category: CategoryCandy}, false},
		{"min inclusive", SweetFilter{MinPrice: ptr(3.5)}, true},
		{"max inclusive", SweetFilter{MaxPrice: ptr(3.5)}, true},
		{"below min", SweetFilter{MinPrice: ptr(4.0)}, false},
		{"above max", SweetFilter{MaxPrice: ptr(3.0)}, false},
		{"combined", SweetFilter{Name: "truffle", Category: CategoryChocolate, MinPrice: ptr(1.0), MaxPrice: ptr(5.0)}, true},
		{"combined one miss", SweetFilter{Name: "truffle", Category: CategoryCandy}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(s))
		})
	}
}

func TestUser_PublicOmitsPassword(t *testing.T) {
	u := &User{ID: "1", Name: "A", Email: "a@example.com", PasswordHash: "hash", Role: RoleAdmin}
	p := u.Public()
	assert.Equal(t, PublicUser{ID: "1", Name: "A", Email: "a@example.com", Role: RoleAdmin}, p)
	assert.True(t, u.IsAdmin())
}
