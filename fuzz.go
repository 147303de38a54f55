package gitypelib

func Fuzz(data []byte) int {
	t, err := New(data, Options{SkipValidation: true})
	if err != nil {
		return 0
	}
	if err := t.Validate(); err != nil {
		return 0
	}
	return 1
}
