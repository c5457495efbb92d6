package location

import "github.com/bandseeking/bandseeking-go/internal/domain"

// staticLocalities answers the most common codes without a network call.
var staticLocalities = map[string]domain.Locality{
	"27601": {City: "Raleigh", State: "NC"},
	"27603": {City: "Raleigh", State: "NC"},
	"27605": {City: "Raleigh", State: "NC"},
	"27701": {City: "Durham", State: "NC"},
	"27514": {City: "Chapel Hill", State: "NC"},
	"27510": {City: "Carrboro", State: "NC"},
	"28202": {City: "Charlotte", State: "NC"},
	"27401": {City: "Greensboro", State: "NC"},
	"28801": {City: "Asheville", State: "NC"},
	"27101": {City: "Winston-Salem", State: "NC"},
	"27511": {City: "Cary", State: "NC"},
	"10001": {City: "New York", State: "NY"},
	"11211": {City: "Brooklyn", State: "NY"},
	"90028": {City: "Los Angeles", State: "CA"},
	"90210": {City: "Beverly Hills", State: "CA"},
	"94102": {City: "San Francisco", State: "CA"},
	"37203": {City: "Nashville", State: "TN"},
	"38103": {City: "Memphis", State: "TN"},
	"78701": {City: "Austin", State: "TX"},
	"60601": {City: "Chicago", State: "IL"},
	"70116": {City: "New Orleans", State: "LA"},
	"98101": {City: "Seattle", State: "WA"},
	"97205": {City: "Portland", State: "OR"},
	"30303": {City: "Atlanta", State: "GA"},
	"02108": {City: "Boston", State: "MA"},
	"80202": {City: "Denver", State: "CO"},
	"48201": {City: "Detroit", State: "MI"},
	"55401": {City: "Minneapolis", State: "MN"},
	"19103": {City: "Philadelphia", State: "PA"},
	"33101": {City: "Miami", State: "FL"},
	"89101": {City: "Las Vegas", State: "NV"},
	"29401": {City: "Charleston", State: "SC"},
	"23219": {City: "Richmond", State: "VA"},
}
