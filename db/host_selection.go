package db

import (
	"github.com/gocql/gocql"
	"go.uber.org/atomic"
)

// localDcPolicy routes to the data center of the first host the driver reports,
// falling back to round robin until that host is known.
type localDcPolicy struct {
	child    atomic.Value
	dcPinned atomic.Bool
}

type policyHolder struct {
	policy gocql.HostSelectionPolicy
}

func NewDefaultHostSelectionPolicy() gocql.HostSelectionPolicy {
	return gocql.TokenAwareHostPolicy(newLocalDcPolicy(), gocql.ShuffleReplicas())
}

func newLocalDcPolicy() *localDcPolicy {
	p := &localDcPolicy{}
	p.child.Store(policyHolder{gocql.RoundRobinHostPolicy()})
	return p
}

func (p *localDcPolicy) current() gocql.HostSelectionPolicy {
	return p.child.Load().(policyHolder).policy
}

func (p *localDcPolicy) AddHost(host *gocql.HostInfo) {
	if p.dcPinned.CAS(false, true) {
		policy := gocql.DCAwareRoundRobinPolicy(host.DataCenter())
		p.child.Store(policyHolder{policy})
		policy.AddHost(host)
		return
	}
	p.current().AddHost(host)
}

func (p *localDcPolicy) RemoveHost(host *gocql.HostInfo)             { p.current().RemoveHost(host) }
func (p *localDcPolicy) HostUp(host *gocql.HostInfo)                 { p.current().HostUp(host) }
func (p *localDcPolicy) HostDown(host *gocql.HostInfo)               { p.current().HostDown(host) }
func (p *localDcPolicy) SetPartitioner(partitioner string)           { p.current().SetPartitioner(partitioner) }
func (p *localDcPolicy) KeyspaceChanged(e gocql.KeyspaceUpdateEvent) { p.current().KeyspaceChanged(e) }
func (p *localDcPolicy) IsLocal(host *gocql.HostInfo) bool           { return p.current().IsLocal(host) }
func (p *localDcPolicy) Pick(query gocql.ExecutableQuery) gocql.NextHost {
	return p.current().Pick(query)
}

// Init is not called by the token aware parent on its fallback policy
func (p *localDcPolicy) Init(*gocql.Session) {}
