package filter

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/s0up4200/marquee/tmdb"
)

const dateLayout = "2006-01-02"

// Filter is a compiled expression evaluated against titles. It is safe for
// concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
	compiler   *Compiler
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if cache, err := lru.New[string, *Filter](size); err == nil {
			c.cache = cache
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// WithClock sets the time source used by now() and the date helpers
func WithClock(now func() time.Time) CompilerOption {
	return func(c *Compiler) {
		if now != nil {
			c.now = now
		}
	}
}

// Compiler compiles filter expressions over tmdb.Movie
type Compiler struct {
	helperFuncs map[string]any
	cache       *lru.Cache[string, *Filter]
	now         func() time.Time
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helperFuncs: make(map[string]any),
		now:         time.Now,
	}
	addHelperFunctions(c.helperFuncs)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter. Identifiers
// are checked against the movie environment, so a misspelled field fails
// here rather than at evaluation.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(tmdb.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &Filter{
		expression: expression,
		program:    program,
		compiler:   c,
	}

	if c.cache != nil {
		c.cache.Add(expression, filter)
	}
	return filter, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate runs the filter against a single title
func (f *Filter) Evaluate(movie tmdb.Movie) (bool, error) {
	result, err := expr.Run(f.program, f.compiler.environment(movie))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.DisplayTitle(),
			Err:        err,
		}
	}
	return result.(bool), nil
}

// Match reports whether movie satisfies the filter. Evaluation errors
// count as no match.
func (f *Filter) Match(movie tmdb.Movie) bool {
	ok, err := f.Evaluate(movie)
	return err == nil && ok
}

// Apply returns the titles that satisfy the filter, in order
func (f *Filter) Apply(movies []tmdb.Movie) []tmdb.Movie {
	matched := make([]tmdb.Movie, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the movie-independent helpers
func addHelperFunctions(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(dateLayout, dateStr)
		return t
	}
}

// environment builds the evaluation environment for one title
func (c *Compiler) environment(movie tmdb.Movie) map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+24)
	maps.Copy(env, c.helperFuncs)

	now := c.now
	released, _ := time.Parse(dateLayout, movie.Released())

	env["now"] = now
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["hasGenre"] = func(genre any) bool {
		switch g := genre.(type) {
		case int:
			return movie.HasGenre(strconv.Itoa(g))
		case string:
			return movie.HasGenre(g)
		default:
			return movie.HasGenre(fmt.Sprint(g))
		}
	}
	env["releasedWithin"] = func(days int) bool {
		if released.IsZero() {
			return false
		}
		age := now().Sub(released)
		return age >= 0 && age <= time.Duration(days)*24*time.Hour
	}
	env["isUpcoming"] = func() bool {
		return !released.IsZero() && released.After(now())
	}

	env["ID"] = movie.ID
	env["Title"] = movie.DisplayTitle()
	env["OriginalTitle"] = movie.OriginalTitle
	env["Overview"] = movie.Overview
	env["VoteAverage"] = movie.VoteAverage
	env["VoteCount"] = movie.VoteCount
	env["Popularity"] = movie.Popularity
	env["ReleaseDate"] = movie.Released()
	env["Released"] = released
	env["Year"] = movie.Year()
	env["MediaType"] = string(movie.MediaType)
	env["IsMovie"] = movie.MediaType.IsMovie()
	env["Adult"] = movie.Adult
	env["Language"] = movie.OriginalLanguage
	env["GenreIDs"] = movie.GenreIDs
	env["Genres"] = movie.GenreNames()
	env["Runtime"] = movie.Runtime

	return env
}
