package session

// Realm selects which authentication surface of the API the service talks
// to, and under which keys the session is persisted. The consumer app and
// the back-office app differ only in endpoints, key prefix and the presence
// of a role on the profile.
type Realm struct {
	Name         string
	LoginPath    string
	RegisterPath string
	ProfilePath  string
	TokenKey     string
	ProfileKey   string
}

// Consumer is the end-user app realm.
var Consumer = Realm{
	Name:         "consumer",
	LoginPath:    "/users/login",
	RegisterPath: "/users/register",
	ProfilePath:  "/users/me",
	TokenKey:     "cityhop:token",
	ProfileKey:   "cityhop:profile",
}

// Admin is the back-office app realm.
var Admin = Realm{
	Name:         "admin",
	LoginPath:    "/admins/login",
	RegisterPath: "/admins/register",
	ProfilePath:  "/admins/me",
	TokenKey:     "cityhop-ops:token",
	ProfileKey:   "cityhop-ops:profile",
}
