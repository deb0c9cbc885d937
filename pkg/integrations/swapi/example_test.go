package swapi_test

import (
	"fmt"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

func ExampleParseURL() {
	key, _ := swapi.ParseURL("https://swapi.dev/api/people/1/")
	fmt.Println(key.Type, key.ID)

	key, _ = swapi.ParseURL("https://swapi.dev/api/films/?search=hope")
	fmt.Printf("%s %q\n", key.Type, key.ID)
	// Output:
	// people 1
	// films ""
}

func ExampleCreateEdge() {
	e, ok := swapi.CreateEdge("https://swapi.dev/api/starships/12/")
	fmt.Println(e.Key().CacheKey(), ok)

	_, ok = swapi.CreateEdge("Corellian")
	fmt.Println(ok)
	// Output:
	// starships/12 true
	// false
}
