package accept_booking

// Request модель запроса на подтверждение заявки
type Request struct {
	BookingID int64           // ID подтверждаемой заявки
	Identity  RequestIdentity // Кто подтверждает
}

// RequestIdentity личность вызывающего
type RequestIdentity struct {
	UserID  int64
	IsAdmin bool
}

// Response модель ответа с результатом подтверждения
type Response struct {
	BookingID         int64
	ConsultationID    int64
	Status            string
	CancelledSiblings int // Сколько конкурирующих заявок отменено каскадом
}
