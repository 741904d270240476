package ptr

func Float64(f float64) *float64 {
	return &f
}

func Int64(i int64) *int64 {
	return &i
}

func String(s string) *string {
	return &s
}
