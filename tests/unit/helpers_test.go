package unit_test

func stringPtr(s string) *string {
	return &s
}
