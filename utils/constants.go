package utils

// TrendingTopics seeds the home feed: one is picked at random per refresh.
var TrendingTopics = []string{"travel", "fitness", "fashion", "food", "luxury", "tech", "business", "motivation"}

/*curl commands =>

curl -X POST "http://localhost:8080/auth/register" -d "email=a@b.c&name=Alice&password=secret"

curl -b cookies.txt "http://localhost:8080/api/search?q=luxury&timeframe=7d&sort_by=views"

curl -b cookies.txt "http://localhost:8080/api/home/feed"

curl -b cookies.txt "http://localhost:8080/api/anomalous?timeframe=3d&sort_by=anomaly"

curl -b cookies.txt -X POST "http://localhost:8080/api/radar/add" -d "keyword=crypto"

curl -b cookies.txt "http://localhost:8080/api/spy/results?username=natgeo"

*/
