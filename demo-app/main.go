package main

import (
	"io"
	"log"
	"net/http"
	"strconv"
)

type Order struct {
	ID     string
	Amount string
}

var currentUser = "guest"

//sensors:loginid
func CurrentUser() string {
	return currentUser
}

//sensors:init serverUrl=http://localhost:8106/sa?project=default debug=false
func setup(addr string) {
	log.Printf("listening on %s", addr)
}

//sensors:signup anonymousId=@r.RemoteAddr
func login(w http.ResponseWriter, r *http.Request) {
	currentUser = r.URL.Query().Get("user")
	io.WriteString(w, "welcome "+currentUser)
}

//sensors:track eventName=ViewIndex
//sensors:property key=page value=index
func index(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "hello world")
}

//sensors:track eventName=Buy isLoginId includeParams flush
//sensors:property key=currency value=EUR
//sensors:property key=discount value=0.15
//sensors:property param=quantity key=items
//sensors:profile type=increment isLoginId
//sensors:property key=orders value=1
func buy(order Order, quantity int) {
	log.Printf("order %s of %d items", order.ID, quantity)
}

//sensors:item itemType=order itemId=@order.ID
//sensors:property key=amount value=@order.Amount
func saveOrder(order Order) {}

func checkout(w http.ResponseWriter, r *http.Request) {
	quantity, _ := strconv.Atoi(r.URL.Query().Get("quantity"))
	order := Order{ID: r.URL.Query().Get("id"), Amount: r.URL.Query().Get("amount")}
	buy(order, quantity)
	saveOrder(order)
	io.WriteString(w, "thank you")
}

func main() {
	setup(":8000")
	http.HandleFunc("/", index)
	http.HandleFunc("/login", login)
	http.HandleFunc("/checkout", checkout)

	http.ListenAndServe(":8000", nil)
}
