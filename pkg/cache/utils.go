package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashKey generates MD5 hash of a key.
func HashKey(key string) string {
	hasher := md5.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ToolKey builds the cache key of a tool invocation from its name and
// normalized arguments. Struct arguments marshal with a fixed field order,
// so equal calls share a key.
func ToolKey(tool string, args interface{}) (string, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return fmt.Sprintf("tool:%s:%s", tool, HashKey(string(data))), nil
}
