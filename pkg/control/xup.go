package control

import "github.com/wattctl/poet/pkg/numeric"

// newXupState seeds a multiplier state from the configuration in effect at
// Init (spec.md 3): u/uo/uoo all start at that configuration's metric, e/eo
// at the shared starting error.
func newXupState(initial, umin, umax Real) xupState {
	return xupState{
		u:    initial,
		uo:   initial,
		uoo:  initial,
		e:    eStart,
		eo:   eoStart,
		umin: umin,
		umax: umax,
	}
}

// calculateXup is the discrete-time linear control law (spec.md 4.3): given
// the current observed rate, the desired rate, and the base workload, it
// computes a bounded next multiplier u and shifts history.
//
//	A = P1*Z1 + P2*Z1 - MU*P1*P2 + MU*P2 - P2 + MU*P1 - P1 - MU   (negated)
//	B = MU*P1*P2*Z1 - P1*P2*Z1 - MU*P2*Z1 - MU*P1*Z1 + MU*Z1 + P1*P2   (negated)
//	C = ((MU - MU*P1)*P2 + MU*P1 - MU)*w
//	D = ((MU*P1 - MU)*P2 - MU*P1 + MU)*w*Z1
//	F = 1 / (Z1 - 1)
//	e = rd - r
//	u = F*(A*uo + B*uoo + C*e + D*eo)
func calculateXup(currentRate, desiredRate, w Real, s *xupState) {
	a := p1.Mul(z1).Add(p2.Mul(z1)).Sub(mu.Mul3(p1, p2)).Add(mu.Mul(p2)).Sub(p2).Add(mu.Mul(p1)).Sub(p1).Sub(mu)
	a = a.Neg()

	b := mu.Mul4(p1, p2, z1).Sub(p1.Mul3(p2, z1)).Sub(mu.Mul3(p2, z1)).Sub(mu.Mul3(p1, z1)).Add(mu.Mul(z1)).Add(p1.Mul(p2))
	b = b.Neg()

	c := (mu.Sub(mu.Mul(p1))).Mul(p2).Add(mu.Mul(p1)).Sub(mu).Mul(w)

	d := (mu.Mul(p1).Sub(mu)).Mul(p2).Sub(mu.Mul(p1)).Add(mu).Mul(w).Mul(z1)

	f := numeric.One.Div(z1.Sub(numeric.One))

	s.e = desiredRate.Sub(currentRate)

	s.u = f.Mul(a.Mul(s.uo).Add(b.Mul(s.uoo)).Add(c.Mul(s.e)).Add(d.Mul(s.eo)))

	// Speedups/powerups below the minimum have no effect; above the
	// maximum are not achievable (spec.md 4.3 clamp policy).
	if s.u.Less(s.umin) {
		s.u = s.umin
	}
	if s.u.Greater(s.umax) {
		s.u = s.umax
	}

	s.uoo = s.uo
	s.uo = s.u
	s.eo = s.e
}

// calculateCostXup primes the non-controlled multiplier's history with the
// time-division solver's secondary-metric estimate (spec.md 4.5). The
// control law only ever runs on the constrained metric; the other one is
// tracked for logging only, so its history is carried forward directly
// instead of through calculateXup's formula.
func calculateCostXup(costXup Real, s *xupState) {
	s.uoo = s.uo
	s.uo = s.u
	s.u = costXup
	s.e = numeric.Zero
	s.eo = numeric.Zero
}
