package store

// MockProfileStore is a ProfileLoader for tests.
type MockProfileStore struct {
	Profile   *Profile
	LoadError error
}

// Load returns the configured profile, or the built-in one when none is set.
func (m *MockProfileStore) Load() (*Profile, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Profile == nil {
		return DefaultProfile(), nil
	}
	return m.Profile, nil
}
