package export

import "github.com/brianvoe/gofakeit/v7"

// User is a synthetic library patron attached to a simulated user id.
type User struct {
	Name  string
	Email string
}

// GenerateUsers produces n users with unique email addresses. Generation is
// deterministic for a given seed; duplicate emails are redrawn until n
// distinct ones exist.
func GenerateUsers(n int, seed uint64) []User {
	faker := gofakeit.New(seed)
	users := make([]User, 0, n)
	seenEmails := map[string]bool{}
	for len(users) < n {
		email := faker.Email()
		if seenEmails[email] {
			continue
		}
		seenEmails[email] = true
		users = append(users, User{Name: faker.Name(), Email: email})
	}
	return users
}
