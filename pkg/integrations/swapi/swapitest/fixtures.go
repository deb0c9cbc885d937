package swapitest

// fixture is one entity payload. "{root}" is replaced by the server's API
// root when served.
type fixture struct {
	id   string
	body string
}

// Fixture collections in id order, trimmed SWAPI payloads. Every
// reference points at another fixture so neighbourhoods resolve.
var defaultFixtures = map[string][]fixture{
	"people": {
		{"1", `{
	"name": "Luke Skywalker",
	"height": "172",
	"mass": "77",
	"birth_year": "19BBY",
	"gender": "male",
	"homeworld": "{root}/planets/1/",
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"species": [],
	"vehicles": ["{root}/vehicles/14/"],
	"starships": ["{root}/starships/12/"],
	"created": "2014-12-09T13:50:51.644000Z",
	"edited": "2014-12-20T21:17:56.891000Z",
	"url": "{root}/people/1/"
}`},
		{"4", `{
	"name": "Darth Vader",
	"height": "202",
	"mass": "136",
	"birth_year": "41.9BBY",
	"gender": "male",
	"homeworld": "{root}/planets/1/",
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"species": [],
	"vehicles": [],
	"starships": ["{root}/starships/13/"],
	"created": "2014-12-10T15:18:20.704000Z",
	"edited": "2014-12-20T21:17:50.313000Z",
	"url": "{root}/people/4/"
}`},
		{"5", `{
	"name": "Leia Organa",
	"height": "150",
	"mass": "49",
	"birth_year": "19BBY",
	"gender": "female",
	"homeworld": "{root}/planets/2/",
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"species": [],
	"vehicles": [],
	"starships": [],
	"created": "2014-12-10T15:20:09.791000Z",
	"edited": "2014-12-20T21:17:50.315000Z",
	"url": "{root}/people/5/"
}`},
		{"10", `{
	"name": "Obi-Wan Kenobi",
	"height": "182",
	"mass": "77",
	"birth_year": "57BBY",
	"gender": "male",
	"homeworld": "{root}/planets/20/",
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"species": [],
	"vehicles": ["{root}/vehicles/38/"],
	"starships": ["{root}/starships/48/"],
	"created": "2014-12-10T16:16:29.192000Z",
	"edited": "2014-12-20T21:17:50.325000Z",
	"url": "{root}/people/10/"
}`},
	},
	"planets": {
		{"1", `{
	"name": "Tatooine",
	"rotation_period": "23",
	"orbital_period": "304",
	"climate": "arid",
	"terrain": "desert",
	"population": "200000",
	"residents": ["{root}/people/1/", "{root}/people/4/"],
	"films": ["{root}/films/1/"],
	"url": "{root}/planets/1/"
}`},
		{"2", `{
	"name": "Alderaan",
	"rotation_period": "24",
	"orbital_period": "364",
	"climate": "temperate",
	"terrain": "grasslands, mountains",
	"population": "2000000000",
	"residents": ["{root}/people/5/"],
	"films": ["{root}/films/1/"],
	"url": "{root}/planets/2/"
}`},
		{"20", `{
	"name": "Stewjon",
	"rotation_period": "unknown",
	"orbital_period": "unknown",
	"climate": "temperate",
	"terrain": "grass",
	"population": "unknown",
	"residents": ["{root}/people/10/"],
	"films": [],
	"url": "{root}/planets/20/"
}`},
	},
	"films": {
		{"1", `{
	"title": "A New Hope",
	"episode_id": 4,
	"director": "George Lucas",
	"release_date": "1977-05-25",
	"characters": ["{root}/people/1/", "{root}/people/4/", "{root}/people/5/", "{root}/people/10/"],
	"planets": ["{root}/planets/1/", "{root}/planets/2/"],
	"starships": ["{root}/starships/12/", "{root}/starships/13/"],
	"vehicles": [],
	"species": ["{root}/species/1/"],
	"url": "{root}/films/1/"
}`},
		{"2", `{
	"title": "The Empire Strikes Back",
	"episode_id": 5,
	"director": "Irvin Kershner",
	"release_date": "1980-05-17",
	"characters": ["{root}/people/1/", "{root}/people/4/", "{root}/people/5/", "{root}/people/10/"],
	"planets": [],
	"starships": ["{root}/starships/12/"],
	"vehicles": ["{root}/vehicles/14/"],
	"species": ["{root}/species/1/"],
	"url": "{root}/films/2/"
}`},
	},
	"vehicles": {
		{"14", `{
	"name": "Snowspeeder",
	"model": "t-47 airspeeder",
	"vehicle_class": "airspeeder",
	"pilots": ["{root}/people/1/"],
	"films": ["{root}/films/2/"],
	"url": "{root}/vehicles/14/"
}`},
		{"38", `{
	"name": "Tribubble bongo",
	"model": "Fambaa",
	"vehicle_class": "submarine",
	"pilots": ["{root}/people/10/"],
	"films": [],
	"url": "{root}/vehicles/38/"
}`},
	},
	"starships": {
		{"12", `{
	"name": "X-wing",
	"model": "T-65 X-wing",
	"starship_class": "Starfighter",
	"pilots": ["{root}/people/1/"],
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"url": "{root}/starships/12/"
}`},
		{"13", `{
	"name": "TIE Advanced x1",
	"model": "Twin Ion Engine Advanced x1",
	"starship_class": "Starfighter",
	"pilots": ["{root}/people/4/"],
	"films": ["{root}/films/1/"],
	"url": "{root}/starships/13/"
}`},
		{"48", `{
	"name": "Jedi starfighter",
	"model": "Delta-7 Aethersprite-class interceptor",
	"starship_class": "Starfighter",
	"pilots": ["{root}/people/10/"],
	"films": [],
	"url": "{root}/starships/48/"
}`},
	},
	"species": {
		{"1", `{
	"name": "Human",
	"classification": "mammal",
	"language": "Galactic Basic",
	"homeworld": null,
	"people": ["{root}/people/1/", "{root}/people/4/", "{root}/people/5/", "{root}/people/10/"],
	"films": ["{root}/films/1/", "{root}/films/2/"],
	"url": "{root}/species/1/"
}`},
	},
}
