package graph

// Arc is a directed edge to the node To. Distance is informational (e.g. meters),
// searches count every arc as one step.
type Arc struct {
	To       NodeId
	Distance int
}

func MakeArc(to NodeId, distance int) Arc {
	return Arc{To: to, Distance: distance}
}

func (a Arc) Destination() NodeId {
	return a.To
}

func (a Arc) Cost() int {
	return a.Distance
}
