package entities

// All lists every table model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Service{},
		&ServiceFeature{},
		&ClientService{},
		&Document{},
		&Meeting{},
		&Message{},
		&Testimonial{},
		&BlogPost{},
	}
}
