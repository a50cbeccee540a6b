package magpie

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"sync"

	"modernc.org/sqlite"
)

func init() {
	// Provide REGEXP support for query.Regexp predicates.
	// SQLite invokes the "regexp" function with (pattern, value).
	sqlite.MustRegisterDeterministicScalarFunction("regexp", 2, regexpFunc)
}

// regexpCache keeps the most recently compiled pattern. A query evaluates
// one pattern across every row, so a single slot covers the hot path.
var regexpCache struct {
	sync.Mutex
	pattern string
	re      *regexp.Regexp
}

func compileCached(pattern string) (*regexp.Regexp, error) {
	regexpCache.Lock()
	defer regexpCache.Unlock()
	if regexpCache.re != nil && regexpCache.pattern == pattern {
		return regexpCache.re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexpCache.pattern, regexpCache.re = pattern, re
	return re, nil
}

// regexpFunc evaluates a match. Null inputs match nothing; an invalid
// pattern surfaces as a statement error on the running query, not a crash.
func regexpFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("regexp expects 2 arguments, got %d", len(args))
	}

	pattern, patternOK := textValue(args[0])
	value, valueOK := textValue(args[1])
	if !patternOK || !valueOK {
		return int64(0), nil
	}

	re, err := compileCached(pattern)
	if err != nil {
		return nil, err
	}
	if re.MatchString(value) {
		return int64(1), nil
	}
	return int64(0), nil
}

// textValue coerces a driver value to text the way SQLite TEXT affinity
// would. Nulls report false; numbers match against their decimal rendering.
func textValue(v driver.Value) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return fmt.Sprint(val), true
	}
}
