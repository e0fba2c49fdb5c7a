package graph

import "time"

func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// argOptString returns nil when key is absent or null.
func argOptString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func argInt(args map[string]interface{}, key string) int {
	n, _ := args[key].(int)
	return n
}

func argInt64(args map[string]interface{}, key string) int64 {
	return int64(argInt(args, key))
}

func argOptInt64(args map[string]interface{}, key string) *int64 {
	n, ok := args[key].(int)
	if !ok {
		return nil
	}
	v := int64(n)
	return &v
}

func argOptTime(args map[string]interface{}, key string) *time.Time {
	t, ok := args[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}
