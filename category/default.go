package category

// defaultMetas is the hand-authored table used when the site has no categories.toml.
var defaultMetas = map[Key]Meta{
	// https://zk-learning.org/
	"zklearning": {
		Title:       "Zero-Knowledge",
		Description: "Zero Knowledge Blog where I write about several usefull tools in the ZKP world. I try to explain the concepts in a simple way and give examples.",
		Order:       1,
	},
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(defaultMetas)
	if err != nil {
		panic(err)
	}
	return r
}
