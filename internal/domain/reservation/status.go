package reservation

// Status values keep the operational vocabulary the front desk uses;
// cancelado, checked_out and no_show are terminal.
type Status string

const (
	StatusPreReserva Status = "pre-reserva"
	StatusReservado  Status = "reservado"
	StatusConfirmado Status = "confirmado"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelado  Status = "cancelado"
	StatusNoShow     Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPreReserva, StatusReservado, StatusConfirmado,
		StatusCheckedIn, StatusCheckedOut, StatusCancelado, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelado, StatusCheckedOut, StatusNoShow:
		return true
	default:
		return false
	}
}

// BlocksRoom reports whether a reservation in this status still occupies
// its room for overlap purposes. Only cancellation frees the dates.
func (s Status) BlocksRoom() bool {
	return s != StatusCancelado
}

var transitions = map[Status][]Status{
	StatusPreReserva: {StatusReservado, StatusConfirmado, StatusCancelado, StatusNoShow},
	StatusReservado:  {StatusConfirmado, StatusCancelado, StatusNoShow},
	StatusConfirmado: {StatusCheckedIn, StatusCancelado, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelado, StatusNoShow},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
