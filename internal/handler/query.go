package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cardash/internal/dashboard"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

// strictIntQuery is like intQuery but reports malformed values.
func strictIntQuery(c *gin.Context, key string) (int, bool, error) {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return 0, false, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %q is not an integer", key, val)
	}
	return i, true, nil
}

// rangeQuery reads <name>_min and <name>_max. Both must be given together.
func rangeQuery(c *gin.Context, name string) (dashboard.Range, error) {
	lo, okLo, err := strictIntQuery(c, name+"_min")
	if err != nil {
		return dashboard.Range{}, err
	}
	hi, okHi, err := strictIntQuery(c, name+"_max")
	if err != nil {
		return dashboard.Range{}, err
	}
	if okLo != okHi {
		return dashboard.Range{}, fmt.Errorf("%s_min and %s_max must be given together", name, name)
	}
	return dashboard.Range{Min: lo, Max: hi}, nil
}

func stateQuery(c *gin.Context) (dashboard.FilterState, error) {
	s := dashboard.FilterState{
		Brand: strings.TrimSpace(c.Query("brand")),
		Model: strings.TrimSpace(c.Query("model")),
	}
	var err error
	if s.Age, err = rangeQuery(c, "age"); err != nil {
		return s, err
	}
	if s.Mileage, err = rangeQuery(c, "mileage"); err != nil {
		return s, err
	}
	if s.Power, err = rangeQuery(c, "power"); err != nil {
		return s, err
	}
	return s, s.Validate()
}
