// Package infinitode is a client for the Infinitode 2 leaderboard service.
// A Session issues the requests; responses come back as typed Score,
// Leaderboard and Player values with follow-up fetches for linked data.
package infinitode
